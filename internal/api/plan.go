package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/JakeFAU/fighter-timeline/internal/metrics"
	"github.com/JakeFAU/fighter-timeline/internal/scroll"
)

const (
	defaultPlanStep = time.Second
	minPlanStep     = 16 * time.Millisecond
	maxPlanSamples  = 2000
)

type planRequest struct {
	scroll.Geometry
	StepMS int64 `json:"step_ms"`
}

type planSample struct {
	ElapsedMS int64   `json:"elapsed_ms"`
	Progress  float64 `json:"progress"`
	Target    float64 `json:"target"`
}

type planResponse struct {
	DurationMS    int64        `json:"duration_ms"`
	FocusFraction float64      `json:"focus_fraction"`
	SettleDelayMS int64        `json:"settle_delay_ms"`
	SettleTarget  float64      `json:"settle_target"`
	Samples       []planSample `json:"samples"`
}

// scrollPlan previews the offsets a run would request against fixed geometry.
func (s *Server) scrollPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	step := defaultPlanStep
	if req.StepMS > 0 {
		step = time.Duration(req.StepMS) * time.Millisecond
	}
	if step < minPlanStep {
		step = minPlanStep
	}
	plan := buildPlan(s.scroll, req.Geometry, step)
	metrics.ObserveScrollPlan(len(plan.Samples))
	writeJSON(w, http.StatusOK, plan)
}

func (req planRequest) validate() error {
	switch {
	case req.Height < 0:
		return errors.New("height must be >= 0")
	case req.ViewportHeight < 0:
		return errors.New("viewport_height must be >= 0")
	case req.StepMS < 0:
		return errors.New("step_ms must be >= 0")
	}
	return nil
}

func buildPlan(cfg scroll.Config, g scroll.Geometry, step time.Duration) planResponse {
	if cfg.Duration > 0 && cfg.Duration/step > maxPlanSamples {
		step = cfg.Duration / maxPlanSamples
	}
	samples := make([]planSample, 0, 2+int(cfg.Duration/step))
	for elapsed := time.Duration(0); elapsed < cfg.Duration; elapsed += step {
		samples = append(samples, sample(cfg, g, elapsed))
	}
	samples = append(samples, sample(cfg, g, cfg.Duration))
	return planResponse{
		DurationMS:    cfg.Duration.Milliseconds(),
		FocusFraction: cfg.FocusFraction,
		SettleDelayMS: cfg.SettleDelay.Milliseconds(),
		SettleTarget:  scroll.SettleTarget(g, cfg.SettleOffset),
		Samples:       samples,
	}
}

func sample(cfg scroll.Config, g scroll.Geometry, elapsed time.Duration) planSample {
	p := scroll.Progress(elapsed, cfg.Duration)
	return planSample{
		ElapsedMS: elapsed.Milliseconds(),
		Progress:  p,
		Target:    scroll.Target(g, p, cfg.FocusFraction),
	}
}

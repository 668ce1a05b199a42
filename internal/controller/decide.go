package controller

import (
	"github.com/Borislavv/go-ash-adaptive/internal/metrics"
	"github.com/Borislavv/go-ash-adaptive/model"
)

const (
	wsThrashingRatio   = 300
	wsFitsRatio        = 60
	sequentialRatio    = 80
	oneTimeScanRatio   = 60
	oneTimeScanMaxHits = 2
	hotSetMinHits      = 5
	hotSetMaxOneTime   = 30
	shortReuseDistance = 50000
	complexWSLow       = 100
	complexWSHigh      = 200
)

// Decide picks the policy that suits the workload described by s. Rules are
// checked in order and the first match wins; when none matches, the policy
// with the best all-time hit rate is chosen.
func Decide(s model.Snapshot, stats [model.NumPolicies]model.PolicyStats) (model.Policy, model.Reason) {
	ws := s.WorkingSetRatio
	switch {
	case ws > wsThrashingRatio:
		return model.PolicyFIFO, model.ReasonWorkingSetThrashing
	case ws < wsFitsRatio:
		return model.PolicyMRU, model.ReasonWorkingSetFits
	case s.SequentialRatio > sequentialRatio:
		return model.PolicyFIFO, model.ReasonSequential
	case s.OneTimeRatio > oneTimeScanRatio && s.AvgHitsPerItem < oneTimeScanMaxHits:
		return model.PolicyS3FIFO, model.ReasonOneTimeScan
	case s.AvgHitsPerItem > hotSetMinHits && s.OneTimeRatio < hotSetMaxOneTime:
		return model.PolicyMRU, model.ReasonHotSet
	case s.AvgReuseDistance > 0 && s.AvgReuseDistance < shortReuseDistance:
		return model.PolicyLRU, model.ReasonShortReuse
	case ws > complexWSLow && ws < complexWSHigh:
		return model.PolicyLHDSimple, model.ReasonComplexWorkload
	default:
		return metrics.Best(stats), model.ReasonPastPerformance
	}
}

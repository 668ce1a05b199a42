package controller

import "github.com/Borislavv/go-ash-adaptive/model"

// Observer receives engine notifications. Calls are synchronous and happen on
// the goroutine that triggered them, so implementations must return quickly.
type Observer interface {
	PolicySwitched(ev model.SwitchEvent)
	MetricsSampled(s model.Snapshot)
}

type observers []Observer

func (o observers) switched(ev model.SwitchEvent) {
	for _, obs := range o {
		obs.PolicySwitched(ev)
	}
}

func (o observers) sampled(s model.Snapshot) {
	for _, obs := range o {
		obs.MetricsSampled(s)
	}
}

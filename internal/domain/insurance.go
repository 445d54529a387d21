package domain

import "time"

// Plan is an insurance product offered to consumers.
type Plan struct {
	ID       string   `json:"id"       yaml:"id"`
	Name     string   `json:"name"     yaml:"name"`
	Price    float64  `json:"price"    yaml:"price"`
	Duration string   `json:"duration" yaml:"duration"`
	Benefits []string `json:"benefits" yaml:"benefits"`
}

// CareCentre is the health facility chosen for an insurance plan.
type CareCentre struct {
	ID      string `json:"id"      yaml:"id"`
	Name    string `json:"name"    yaml:"name"`
	Address string `json:"address" yaml:"address"`
}

// Insurance is the consumer's current insurance subscription.
type Insurance struct {
	ID         string      `json:"id"         yaml:"id"`
	Plan       Plan        `json:"plan"       yaml:"plan"`
	Status     string      `json:"status"     yaml:"status"`
	Expiry     *time.Time  `json:"expiry"     yaml:"expiry"`
	CareCentre *CareCentre `json:"careCentre" yaml:"care_centre"`
}

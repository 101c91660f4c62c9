package models

import "time"

// Countdown - сколько осталось до конца акции
type Countdown struct {
	EndsAt  time.Time `json:"endsAt"`
	Days    int       `json:"days"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Seconds int       `json:"seconds"`
	Expired bool      `json:"expired"`
}

package models

// JackpotUpdateType tags jackpot messages pushed to live viewers
const JackpotUpdateType = "jackpotUpdate"

// JackpotUpdate is the message broadcast to live viewers
type JackpotUpdate struct {
	Type    string  `json:"type"`
	Jackpot float64 `json:"jackpot"`
}

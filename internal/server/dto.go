package server

import (
	"github.com/hailam/chessvariant/internal/board"
	"github.com/hailam/chessvariant/internal/engine"
	"github.com/hailam/chessvariant/internal/storage"
)

type positionDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p positionDTO) position() (board.Position, bool) {
	pos := board.NewPosition(p.X, p.Y)
	return pos, pos.IsOnMap()
}

type moveDTO struct {
	From      positionDTO `json:"from"`
	To        positionDTO `json:"to"`
	Removed   int         `json:"removed"`
	Promotion bool        `json:"promotion"`
}

type settingsDTO struct {
	Depth             int     `json:"depth"`
	SwitchProbability float64 `json:"switch_probability"`
}

type settingsRequest struct {
	Depth             *int     `json:"depth"`
	SwitchProbability *float64 `json:"switch_probability"`
}

type stateResponse struct {
	Session   string                      `json:"session"`
	Board     [board.Size][board.Size]int `json:"board"`
	Value     int                         `json:"value"`
	Status    string                      `json:"status"`
	Thinking  bool                        `json:"thinking"`
	Selection *positionDTO                `json:"selection,omitempty"`
	Settings  settingsDTO                 `json:"settings"`
	History   []moveDTO                   `json:"history"`
}

type statsResponse struct {
	GamesPlayed   int            `json:"games_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	WinRate       float64        `json:"win_rate"`
	WinsByDepth   map[string]int `json:"wins_by_depth"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_win_streak"`
	PlayTimeMs    int64          `json:"play_time_ms"`
}

func toPositionDTO(pos board.Position) positionDTO {
	return positionDTO{X: pos.X, Y: pos.Y}
}

func toMoveDTO(m board.Move) moveDTO {
	return moveDTO{
		From:      toPositionDTO(m.From),
		To:        toPositionDTO(m.To),
		Removed:   int(m.Removed),
		Promotion: m.IsPromotion(),
	}
}

func movesToDTO(moves []board.Move) []moveDTO {
	result := make([]moveDTO, 0, len(moves))
	for _, m := range moves {
		result = append(result, toMoveDTO(m))
	}
	return result
}

func toSettingsDTO(limits engine.SearchLimits) settingsDTO {
	return settingsDTO{Depth: limits.Depth, SwitchProbability: limits.SwitchProbability}
}

func toStatsResponse(stats *storage.GameStats) statsResponse {
	return statsResponse{
		GamesPlayed:   stats.GamesPlayed,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		Draws:         stats.Draws,
		WinRate:       stats.GetWinRate(),
		WinsByDepth:   stats.WinsByDepth,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestWinStrk,
		PlayTimeMs:    stats.TotalPlayTime.Milliseconds(),
	}
}

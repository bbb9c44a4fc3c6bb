package service

import "github.com/prometheus/client_golang/prometheus"

var (
	GuessesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_total",
			Help: "Accepted guesses by game mode and result",
		},
		[]string{"mode", "result"},
	)
	TurnsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_turns_completed_total",
			Help: "Completed single-player sessions and multiplayer turns",
		},
		[]string{"mode", "outcome"},
	)
	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_points_awarded_total",
			Help: "Points awarded on wins",
		},
		[]string{"mode"},
	)
	SessionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_sessions_created_total",
			Help: "Sessions and turns created by get-or-create",
		},
		[]string{"mode"},
	)
	RejectedTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_rejected_transitions_total",
			Help: "Mutations rejected by kind (validation, state, ownership, not_found)",
		},
		[]string{"kind"},
	)
	BaseScoreFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_base_score_fallback_total",
			Help: "Secrets scored with the default base score because the lexicon had no entry",
		},
	)
)

func init() {
	prometheus.MustRegister(GuessesTotal)
	prometheus.MustRegister(TurnsCompleted)
	prometheus.MustRegister(PointsAwarded)
	prometheus.MustRegister(SessionsCreated)
	prometheus.MustRegister(RejectedTransitions)
	prometheus.MustRegister(BaseScoreFallbacks)
}

func outcomeLabel(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}

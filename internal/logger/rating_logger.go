package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RatingLogger emits structured events for rating passes and calibration
// trials so runs can be reconstructed from the log stream.
type RatingLogger struct {
	logger *logrus.Logger
}

// NewRatingLogger creates a rating event logger.
func NewRatingLogger(logger *logrus.Logger) *RatingLogger {
	return &RatingLogger{logger: logger}
}

// LogGameProcessed records one game application.
func (r *RatingLogger) LogGameProcessed(gameID string, participants int, contribution float64) {
	r.logger.WithFields(logrus.Fields{
		"component":    "rating",
		"event_type":   "game_processed",
		"game_id":      gameID,
		"participants": participants,
		"contribution": contribution,
	}).Debug("Game processed")
}

// LogRatingPass records the outcome of one full pass over the game log.
func (r *RatingLogger) LogRatingPass(processed int, successRate float64, duration time.Duration, committed bool) {
	r.logger.WithFields(logrus.Fields{
		"component":    "rating",
		"event_type":   "rating_pass",
		"processed":    processed,
		"success_rate": successRate,
		"duration_ms":  duration.Milliseconds(),
		"committed":    committed,
	}).Info("Rating pass completed")
}

// LogCalibrationTrial records one hyperparameter trial.
func (r *RatingLogger) LogCalibrationTrial(trial int, gamma, beta, rho, objective float64) {
	r.logger.WithFields(logrus.Fields{
		"component":  "calibration",
		"event_type": "trial",
		"trial":      trial,
		"gamma":      gamma,
		"beta":       beta,
		"rho":        rho,
		"objective":  objective,
	}).Debug("Calibration trial completed")
}

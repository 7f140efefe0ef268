package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
	"lms/progress"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileEnrollmentProgress re-runs the completion evaluator over every
// active enrollment. The evaluator is idempotent, so enrollments whose watch
// state did not change come out unchanged; the sweep only repairs percentages
// that drifted (lessons added or removed by content management, or a flush
// whose recompute was lost).
func reconcileEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	updated := 0
	for i := range enrollments {
		if err := progress.RecomputeEnrollmentProgress(db, &enrollments[i]); err != nil {
			logScheduler(fmt.Sprintf("Error recomputing enrollment %d: %v", enrollments[i].ID, err))
			continue
		}
		updated++
	}
	logScheduler(fmt.Sprintf("Reconciled %d of %d enrollments", updated, len(enrollments)))
}

// StartProgressScheduler runs the nightly progress reconciliation sweep
func StartProgressScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("@daily", reconcileEnrollmentProgress); err != nil {
		log.Fatalf("Failed to schedule progress reconciliation: %v", err)
	}

	c.Start()
	logScheduler("Progress reconciliation scheduler started")
}

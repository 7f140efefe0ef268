package progress

import (
	"log"
	"math"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/models"
)

const (
	// flushInterval is the minimum wall-clock gap between non-forced flushes.
	flushInterval = 5 * time.Second

	// completionThreshold marks a lesson completed once this share of its
	// nominal duration has been watched.
	completionThreshold = 0.9

	// sessionIdleTimeout is how long a drained session survives without a new
	// report before it is evicted.
	sessionIdleTimeout = 30 * time.Minute
)

// observation is the latest playback position reported for one lesson.
type observation struct {
	seconds  float64
	duration float64
}

type sessionKey struct {
	userID   uint
	courseID uint
}

// watchSession buffers observations for one (user, course) viewing session
// between flushes.
type watchSession struct {
	lastFlush time.Time
	pending   map[uint]observation // keyed by lesson id
}

// Recorder converts a stream of playback-position reports into durable,
// monotonic lesson_progress rows without one store round-trip per report.
type Recorder struct {
	db       *gorm.DB
	throttle time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*watchSession
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{
		db:       db,
		throttle: flushInterval,
		now:      time.Now,
		sessions: make(map[sessionKey]*watchSession),
	}
}

// RecordProgress buffers the latest playback position for a lesson and flushes
// the session's buffer once the throttle window has elapsed, or immediately
// when the lesson ended. Progress reporting is best-effort telemetry: reports
// for courses the user is not enrolled in are silently dropped, and store
// failures during a flush are logged and swallowed.
func (r *Recorder) RecordProgress(userID, courseID, lessonID uint, positionSeconds, durationSeconds float64, ended bool) {
	var enrollment models.Enrollment
	if err := r.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return
	}

	r.mu.Lock()
	key := sessionKey{userID: userID, courseID: courseID}
	s, ok := r.sessions[key]
	if !ok {
		s = &watchSession{pending: make(map[uint]observation)}
		r.sessions[key] = s
	}
	s.pending[lessonID] = observation{seconds: positionSeconds, duration: durationSeconds}

	now := r.now()
	if !ended && now.Sub(s.lastFlush) < r.throttle {
		r.mu.Unlock()
		return
	}
	s.lastFlush = now
	snapshot := s.pending
	s.pending = make(map[uint]observation)
	if ended {
		// Playback ended, the session is over. The next report starts a
		// fresh session and flushes immediately.
		delete(r.sessions, key)
	}
	r.evictIdleSessions(now)
	r.mu.Unlock()

	for lID, obs := range snapshot {
		if err := r.upsertLessonProgress(&enrollment, lID, obs, ended); err != nil {
			log.Printf("progress: upsert for lesson %d failed: %v", lID, err)
		}
	}

	if err := RecomputeEnrollmentProgress(r.db, &enrollment); err != nil {
		log.Printf("progress: recompute for enrollment %d failed: %v", enrollment.ID, err)
	}
}

// evictIdleSessions drops sessions that have not flushed within the idle
// timeout, so the map does not grow for the process lifetime. A session
// abandoned mid-window loses at most one throttle window of buffered
// observations. Caller must hold mu.
func (r *Recorder) evictIdleSessions(now time.Time) {
	for key, s := range r.sessions {
		if now.Sub(s.lastFlush) >= sessionIdleTimeout {
			delete(r.sessions, key)
		}
	}
}

// upsertLessonProgress writes one lesson's watch state as a single conditional
// upsert. The monotonic guards live in the conflict clause, so a concurrent
// writer (a second tab on the same lesson) cannot regress watch_time_seconds
// or revert a completion, and completed_at is kept from the first completion.
func (r *Recorder) upsertLessonProgress(enrollment *models.Enrollment, lessonID uint, obs observation, ended bool) error {
	watchSeconds := int(math.Floor(math.Max(0, obs.seconds)))
	isCompleted := ended || (obs.duration > 0 && float64(watchSeconds)/obs.duration >= completionThreshold)

	row := models.LessonProgress{
		UserID:           enrollment.UserID,
		EnrollmentID:     enrollment.ID,
		LessonID:         lessonID,
		WatchTimeSeconds: watchSeconds,
		IsCompleted:      isCompleted,
	}
	if isCompleted {
		now := r.now()
		row.CompletedAt = &now
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"watch_time_seconds": gorm.Expr(
				"CASE WHEN lesson_progress.watch_time_seconds > excluded.watch_time_seconds" +
					" THEN lesson_progress.watch_time_seconds ELSE excluded.watch_time_seconds END"),
			"is_completed": gorm.Expr("lesson_progress.is_completed OR excluded.is_completed"),
			"completed_at": gorm.Expr(
				"CASE WHEN lesson_progress.is_completed THEN lesson_progress.completed_at ELSE excluded.completed_at END"),
			"updated_at": r.now(),
		}),
	}).Create(&row).Error
}

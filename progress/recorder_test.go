package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
)

func TestRecordProgressWithoutEnrollmentIsNoop(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 100)
	recorder, _ := newTestRecorder(db)

	recorder.RecordProgress(42, course.ID, lessons[0].ID, 50, 100, true)

	var count int64
	require.NoError(t, db.Model(&models.LessonProgress{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWatchTimeNeverRegresses(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 300)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 120, 300, true)
	assert.Equal(t, 120, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)

	// A seek backward must not lower the stored watch time.
	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 30, 300, true)
	assert.Equal(t, 120, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)

	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 150, 300, true)
	assert.Equal(t, 150, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)
}

func TestNegativePositionClampedToZero(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, _ := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, -12, 100, true)
	assert.Equal(t, 0, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)
}

func TestCompletionThreshold(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 3, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	// 89 of 100 seconds is below the 90% threshold.
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 89, 100, false)
	row := fetchProgress(t, db, enrollment.ID, lessons[0].ID)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)

	// 90 of 100 seconds hits the threshold.
	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 90, 100, false)
	row = fetchProgress(t, db, enrollment.ID, lessons[0].ID)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)

	// An explicit end signal overrides the ratio check.
	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[1].ID, 1, 100, true)
	assert.True(t, fetchProgress(t, db, enrollment.ID, lessons[1].ID).IsCompleted)

	// Unknown duration and no end signal never completes.
	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[2].ID, 500, 0, false)
	assert.False(t, fetchProgress(t, db, enrollment.ID, lessons[2].ID).IsCompleted)
}

func TestCompletionNeverReverts(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 95, 100, false)
	first := fetchProgress(t, db, enrollment.ID, lessons[0].ID)
	require.True(t, first.IsCompleted)
	require.NotNil(t, first.CompletedAt)

	// A later sub-threshold report keeps the completion and its timestamp.
	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 10, 100, false)
	row := fetchProgress(t, db, enrollment.ID, lessons[0].ID)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.WithinDuration(t, *first.CompletedAt, *row.CompletedAt, time.Second)
}

func TestThrottleBuffersWithinWindow(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 600)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	// First report flushes right away (no previous flush for the session).
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 10, 600, false)
	assert.Equal(t, 10, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)

	// Within the 5s window the report is buffered, not persisted.
	clock.Advance(1 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 20, 600, false)
	assert.Equal(t, 10, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)

	// The end signal forces a flush regardless of elapsed time, carrying the
	// latest buffered observation.
	clock.Advance(500 * time.Millisecond)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 25, 600, true)
	assert.Equal(t, 25, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)
}

func TestFlushWritesAllBufferedLessons(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 2, 600)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 10, 600, false)

	// Buffer observations for both lessons inside the throttle window.
	clock.Advance(1 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 40, 600, false)
	clock.Advance(1 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[1].ID, 15, 600, false)

	clock.Advance(4 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[1].ID, 18, 600, false)

	assert.Equal(t, 40, fetchProgress(t, db, enrollment.ID, lessons[0].ID).WatchTimeSeconds)
	assert.Equal(t, 18, fetchProgress(t, db, enrollment.ID, lessons[1].ID).WatchTimeSeconds)
}

func TestSessionRemovedWhenPlaybackEnds(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 100)
	seedEnrollment(t, db, 1, course.ID)
	recorder, clock := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 10, 100, false)
	assert.Len(t, recorder.sessions, 1)

	clock.Advance(6 * time.Second)
	recorder.RecordProgress(1, course.ID, lessons[0].ID, 95, 100, true)
	assert.Empty(t, recorder.sessions)
}

func TestIdleSessionsEvictedOnFlush(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 1, 600)
	seedEnrollment(t, db, 1, course.ID)
	seedEnrollment(t, db, 2, course.ID)
	recorder, clock := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 10, 600, false)
	require.Len(t, recorder.sessions, 1)

	// A flush by any session sweeps entries idle past the timeout.
	clock.Advance(sessionIdleTimeout)
	recorder.RecordProgress(2, course.ID, lessons[0].ID, 20, 600, false)

	_, stale := recorder.sessions[sessionKey{userID: 1, courseID: course.ID}]
	assert.False(t, stale)
	assert.Len(t, recorder.sessions, 1)
}

func TestFlushRecomputesEnrollmentProgress(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 4, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	recorder, _ := newTestRecorder(db)

	recorder.RecordProgress(1, course.ID, lessons[0].ID, 100, 100, true)

	var updated models.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 25, updated.ProgressPercentage)
	assert.Nil(t, updated.CompletedAt)
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ammarstationary/internal/database"
	"ammarstationary/internal/domain"
	"ammarstationary/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TaskAppendBooking = "append_booking"
	TaskUpdateStatus  = "update_status"
	TaskFullExport    = "full_export"
)

// exportTaskPayload is persisted in ExportTask.Payload as JSON.
type exportTaskPayload struct {
	BookingID string                 `json:"booking_id,omitempty"`
	Booking   *models.BookingRequest `json:"booking,omitempty"`
	Status    string                 `json:"status,omitempty"`
}

// WorkbookWriter renders the bookings workbook to the exports directory.
type WorkbookWriter interface {
	WriteBookings(bookings []*models.BookingRequest) (string, error)
}

// ExportWorker drains the export_queue and applies tasks to the XLSX report
// and the Sheets mirror. Tasks flow through three tiers: the local channel,
// the Redis list, and finally the database poll, so a restart never loses
// queued work.
type ExportWorker struct {
	db            *database.DB
	sheets        domain.SheetsWriter
	workbook      WorkbookWriter
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.ExportTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	logger        *zerolog.Logger
}

// NewExportWorker builds a worker with sane defaults. sheets may be nil when
// the Sheets mirror is not configured; sheet tasks then complete as no-ops.
func NewExportWorker(db *database.DB, sheets domain.SheetsWriter, workbook WorkbookWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	retry = retry.withDefaults()
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &ExportWorker{
		db:            db,
		sheets:        sheets,
		workbook:      workbook,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.ExportTask, models.ExportQueueSize),
		redisQueueKey: "exports:queue",
		deadLetterKey: "exports:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
		logger:        logger,
	}
}

// EnqueueTask persists the task and schedules it via redis or the local queue.
func (w *ExportWorker) EnqueueTask(ctx context.Context, taskType string, bookingID string, booking *models.BookingRequest) error {
	if taskType == "" {
		return errors.New("task type is required")
	}
	if bookingID == "" && booking != nil {
		bookingID = booking.ID
	}
	if bookingID == "" {
		return errors.New("booking id is required")
	}

	payload := exportTaskPayload{
		BookingID: bookingID,
		Booking:   booking,
	}
	if booking != nil {
		payload.Status = booking.Status
	}

	return w.enqueue(ctx, taskType, bookingID, payload)
}

// EnqueueFullExport schedules a complete workbook regeneration.
func (w *ExportWorker) EnqueueFullExport(ctx context.Context) error {
	return w.enqueue(ctx, TaskFullExport, "", exportTaskPayload{})
}

func (w *ExportWorker) enqueue(ctx context.Context, taskType, bookingID string, payload exportTaskPayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.ExportTask{
		TaskType:  taskType,
		BookingID: bookingID,
		Payload:   string(payloadBytes),
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	if err := w.db.CreateExportTask(ctx, &task); err != nil {
		return fmt.Errorf("persist export task: %w", err)
	}

	// Try redis first for durability.
	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.logger.Warn().Err(err).Msg("export_worker: redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	// Fallback to in-memory queue if redis missing or failed.
	select {
	case w.queue <- task:
	default:
		w.logger.Warn().Int64("task_id", task.ID).Msg("export_worker: in-memory queue full, task dropped to polling")
	}

	return nil
}

// Start launches the main loop; stops when ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("export_worker: started")
	defer w.logger.Info().Msg("export_worker: stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingExportTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("export_worker: fetch pending")
			time.Sleep(w.pollInterval)
			continue
		}
		if len(tasks) == 0 {
			time.Sleep(w.pollInterval)
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *ExportWorker) tryLocalQueue() (models.ExportTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.ExportTask{}, false
	}
}

func (w *ExportWorker) tryRedis(ctx context.Context) (models.ExportTask, bool) {
	if w.redis == nil {
		return models.ExportTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return models.ExportTask{}, false
		}
		w.logger.Error().Err(err).Msg("export_worker: redis BRPOP error")
		return models.ExportTask{}, false
	}
	if len(res) != 2 {
		return models.ExportTask{}, false
	}
	var task models.ExportTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("export_worker: decode redis task")
		return models.ExportTask{}, false
	}
	return task, true
}

func (w *ExportWorker) processTask(ctx context.Context, task *models.ExportTask) {
	payload, err := w.decodePayload(task.Payload)
	if err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	if err := w.handleTask(ctx, task.TaskType, payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.db.UpdateExportTaskStatus(ctx, task.ID, "completed", "", nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark completed")
	}
}

func (w *ExportWorker) handleTask(ctx context.Context, taskType string, payload exportTaskPayload) error {
	switch taskType {
	case TaskAppendBooking:
		if payload.Booking == nil {
			return errors.New("booking payload missing")
		}
		if w.sheets == nil {
			return nil
		}
		return w.sheets.AppendBooking(ctx, payload.Booking)
	case TaskUpdateStatus:
		if payload.BookingID == "" || payload.Status == "" {
			return errors.New("booking id or status missing")
		}
		if w.sheets == nil {
			return nil
		}
		return w.sheets.UpdateBookingStatus(ctx, payload.BookingID, payload.Status)
	case TaskFullExport:
		return w.runFullExport(ctx)
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
}

func (w *ExportWorker) runFullExport(ctx context.Context) error {
	bookings, err := w.db.ListBookingRequests(ctx, "")
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}

	if w.workbook != nil {
		path, err := w.workbook.WriteBookings(bookings)
		if err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		w.logger.Info().Str("path", path).Int("bookings", len(bookings)).Msg("export_worker: workbook written")
	}

	if w.sheets != nil {
		if err := w.sheets.ReplaceBookingsSheet(ctx, bookings); err != nil {
			return fmt.Errorf("replace sheet: %w", err)
		}
	}

	return nil
}

func (w *ExportWorker) retryOrFail(ctx context.Context, task *models.ExportTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		if err := w.db.UpdateExportTaskStatus(ctx, task.ID, "failed", cause.Error(), nil); err != nil {
			w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark failed")
		}
		w.pushDeadLetter(ctx, task)
		return
	}

	nextDelay := w.retryPolicy.NextDelay(attempt)
	nextTime := time.Now().Add(nextDelay)
	if err := w.db.UpdateExportTaskStatus(ctx, task.ID, "retry", cause.Error(), &nextTime); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark retry")
	}
}

func (w *ExportWorker) failTask(ctx context.Context, task *models.ExportTask, err error) {
	if err := w.db.UpdateExportTaskStatus(ctx, task.ID, "failed", err.Error(), nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark failed")
	}
	w.pushDeadLetter(ctx, task)
}

func (w *ExportWorker) decodePayload(raw string) (exportTaskPayload, error) {
	var payload exportTaskPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (w *ExportWorker) pushRedis(ctx context.Context, task models.ExportTask) error {
	if w.redis == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *ExportWorker) pushDeadLetter(ctx context.Context, task *models.ExportTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: encode deadletter")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: deadletter push")
	}
}

package errorreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/storage"
)

const (
	logErrorPath      = "/api/log-error"
	fallbackKeyPrefix = "error_"
	fallbackInfo      = "Error logging failed, using fallback"
)

// ErrorLog is the record posted to the reporting endpoint.
type ErrorLog struct {
	ID             string         `json:"id"`
	Message        string         `json:"message"`
	Stack          string         `json:"stack,omitempty"`
	Severity       Severity       `json:"severity"`
	Timestamp      string         `json:"timestamp"`
	UserID         string         `json:"userId,omitempty"`
	Path           string         `json:"path,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	AdditionalInfo string         `json:"additionalInfo,omitempty"`
}

type Options struct {
	// APIURL is the base URL of the reporting API; records go to APIURL + "/api/log-error".
	APIURL string
	// Production enables reporting. Outside production every report is skipped.
	Production  bool
	MinSeverity Severity
	// Fallback keeps error severity records that could not be delivered.
	Fallback storage.KeyValueStore
	Client   *http.Client
	// MaxRetries is how many times a failed delivery is retried. Zero means one attempt.
	MaxRetries uint64
	Now        func() time.Time
	Logger     *zap.Logger
}

type Reporter struct {
	endpoint    string
	production  bool
	minSeverity Severity
	fallback    storage.KeyValueStore
	client      *http.Client
	maxRetries  uint64
	now         func() time.Time
	logger      *zap.Logger
}

func NewReporter(opts Options) *Reporter {
	if opts.MinSeverity == "" {
		opts.MinSeverity = SeverityError
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 5 * time.Second}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Reporter{
		endpoint:    strings.TrimRight(opts.APIURL, "/") + logErrorPath,
		production:  opts.Production,
		minSeverity: opts.MinSeverity,
		fallback:    opts.Fallback,
		client:      opts.Client,
		maxRetries:  opts.MaxRetries,
		now:         opts.Now,
		logger:      opts.Logger.Named("ErrorReport"),
	}
}

func (r *Reporter) Production() bool {
	return r.production
}

// Report sends cause to the reporting endpoint. It never fails: the returned Delivery
// says what happened to the record.
func (r *Reporter) Report(ctx context.Context, cause error, severity Severity, metadata map[string]any) Delivery {
	if cause == nil {
		return Delivery{Outcome: OutcomeSkipped}
	}
	rec := r.newRecord(ctx, cause.Error(), severity, metadata)
	if stack := fmt.Sprintf("%+v", cause); stack != rec.Message {
		rec.Stack = stack
	}
	return r.send(ctx, rec)
}

func (r *Reporter) ReportMessage(ctx context.Context, message string, severity Severity, metadata map[string]any) Delivery {
	return r.send(ctx, r.newRecord(ctx, message, severity, metadata))
}

func (r *Reporter) newRecord(ctx context.Context, message string, severity Severity, metadata map[string]any) ErrorLog {
	if !severity.Valid() {
		severity = SeverityError
	}
	return ErrorLog{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Timestamp: r.now().UTC().Format(time.RFC3339Nano),
		UserID:    UserID(ctx),
		Path:      Path(ctx),
		Metadata:  metadata,
	}
}

func (r *Reporter) send(ctx context.Context, rec ErrorLog) Delivery {
	if !r.production {
		return Delivery{Outcome: OutcomeSkipped}
	}
	if rec.Severity.Less(r.minSeverity) {
		return Delivery{Outcome: OutcomeFiltered}
	}

	er := r.post(ctx, rec)
	if er == nil {
		return Delivery{Outcome: OutcomeDelivered}
	}
	r.logger.Warn("delivery failed", zap.String("id", rec.ID), zap.Error(er))

	if rec.Severity != SeverityError {
		return Delivery{Outcome: OutcomeDropped, Err: er}
	}
	if fer := r.store(rec); fer != nil {
		r.logger.Error("fallback failed", zap.String("id", rec.ID), zap.Error(fer))
		return Delivery{Outcome: OutcomeDropped, Err: fer}
	}
	return Delivery{Outcome: OutcomeFallbackStored, Err: er}
}

func (r *Reporter) post(ctx context.Context, rec ErrorLog) error {
	body, er := json.Marshal(rec)
	if er != nil {
		return er
	}

	op := func() error {
		req, er := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
		if er != nil {
			return er
		}
		req.Header.Set("Content-Type", "application/json")

		resp, er := r.client.Do(req)
		if er != nil {
			return er
		}
		_ = resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		}
		return nil
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	// WithMaxRetries treats zero as unlimited
	if r.maxRetries > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 100 * time.Millisecond
		exp.MaxElapsedTime = 5 * time.Second
		b = backoff.WithMaxRetries(exp, r.maxRetries)
	}
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

func (r *Reporter) store(rec ErrorLog) error {
	if r.fallback == nil {
		return ErrNoFallback
	}
	rec.AdditionalInfo = fallbackInfo
	data, er := json.Marshal(rec)
	if er != nil {
		return er
	}
	key := fmt.Sprintf("%s%d", fallbackKeyPrefix, r.now().UnixMilli())
	if _, found, _ := r.fallback.Get(key); found {
		key = key + "_" + rec.ID
	}
	return r.fallback.Put(key, data)
}

// FallbackLogs returns the records kept by the fallback store in key order, which is
// the order they were stored in.
func (r *Reporter) FallbackLogs() ([]ErrorLog, error) {
	if r.fallback == nil {
		return nil, ErrNoFallback
	}
	keys, er := r.fallback.Keys(fallbackKeyPrefix)
	if er != nil {
		return nil, er
	}

	logs := make([]ErrorLog, 0, len(keys))
	for _, k := range keys {
		data, found, er := r.fallback.Get(k)
		if er != nil {
			return nil, er
		}
		if !found {
			continue
		}
		var rec ErrorLog
		if er = json.Unmarshal(data, &rec); er != nil {
			r.logger.Warn("skipping unreadable fallback record", zap.String("key", k), zap.Error(er))
			continue
		}
		logs = append(logs, rec)
	}
	return logs, nil
}

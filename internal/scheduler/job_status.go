package scheduler

import (
	"sync"
	"time"
)

// JobStatus é o estado exposto de uma tarefa agendada
type JobStatus struct {
	Enabled         bool       `json:"enabled"`
	CronSchedule    string     `json:"cron_schedule"`
	Running         bool       `json:"running"`
	LastStartedAt   *time.Time `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	LastResult      string     `json:"last_result,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
}

// jobState garante uma única execução por vez e guarda o último resultado
type jobState struct {
	mu     sync.Mutex
	status JobStatus
}

func newJobState(enabled bool, cron string) *jobState {
	return &jobState{status: JobStatus{Enabled: enabled, CronSchedule: cron}}
}

// tryStart retorna false quando já existe uma execução em andamento
func (j *jobState) tryStart(now time.Time) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.status.Running {
		return false
	}

	j.status.Running = true
	j.status.LastStartedAt = &now
	return true
}

func (j *jobState) finish(now time.Time, result string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.status.Running = false
	j.status.LastCompletedAt = &now
	j.status.LastResult = result
	j.status.LastError = ""
	if err != nil {
		j.status.LastError = err.Error()
	}
}

func (j *jobState) get() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

package handler

import (
	"net/http"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/budget-guard-api/internal/scheduler"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

// Tipos de tarefa agendada que podem ser executadas manualmente
const (
	CronJobTypeDailyPacing       = "daily-pacing"
	CronJobTypeSnapshotRetention = "snapshot-retention"
	CronJobTypeAll               = "all"
)

// CronJob é uma tarefa agendada que também aceita disparo manual
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() scheduler.JobStatus
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailyPacingRun    CronJob
	SnapshotRetention CronJob
}

func (s CronJobServices) jobs() map[string]CronJob {
	jobs := make(map[string]CronJob, 2)
	if s.DailyPacingRun != nil {
		jobs[CronJobTypeDailyPacing] = s.DailyPacingRun
	}
	if s.SnapshotRetention != nil {
		jobs[CronJobTypeSnapshotRetention] = s.SnapshotRetention
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		var selected []string
		if cronType == CronJobTypeAll {
			for name := range jobs {
				selected = append(selected, name)
			}
			slices.Sort(selected)
		} else if _, ok := jobs[cronType]; ok {
			selected = []string{cronType}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Tipo de cron job inválido. Valores aceitos: daily-pacing, snapshot-retention, all", nil)
			return
		}

		started := make([]string, 0, len(selected))
		for _, name := range selected {
			if jobs[name].TriggerManualSync() {
				started = append(started, name)
			}
		}

		if len(started) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrJobRunning, "Cron job já em execução", nil)
			return
		}

		log.ForContext(r.Context()).WithField("jobs", started).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]scheduler.JobStatus)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

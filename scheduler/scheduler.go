package scheduler

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/database"
	"github.com/flexihtml/flexihtml/logger"
	"github.com/flexihtml/flexihtml/tasks"
)

func converttime(interval string) time.Duration {
	if strings.Contains(interval, "d") {
		intvar, _ := strconv.Atoi(strings.Replace(interval, "d", "", 1))
		dur, _ := time.ParseDuration(strconv.Itoa(intvar*24) + "h")
		return dur
	}
	dur, _ := time.ParseDuration(interval)
	return dur
}

func convertcron(interval string) string {
	if strings.Contains(interval, "d") {
		h := strconv.Itoa(rand.Intn(24))
		m := strconv.Itoa(rand.Intn(60))
		return "0 " + m + " " + h + " */" + strings.Replace(interval, "d", "", 1) + " * *"
	}
	if strings.Contains(interval, "h") {
		m := strconv.Itoa(rand.Intn(60))
		return "0 " + m + " */" + strings.Replace(interval, "h", "", 1) + " * * *"
	}
	return "0 */" + strings.Replace(interval, "m", "", 1) + " * * * *"
}

var QueueMaintenance *tasks.Dispatcher

//InitScheduler starts the maintenance queue and schedules the database
//backup job. Intervals with a d/h/m suffix become cron definitions so a
//restart does not shift the backup time by a full interval.
func InitScheduler() {
	cfg_general := config.ConfigGetGeneral()
	if cfg_general.SchedulerDisabled {
		return
	}

	QueueMaintenance = tasks.NewDispatcher("Maintenance", 1, 40)
	QueueMaintenance.Start()

	if cfg_general.BackupInterval != "" {
		if strings.ContainsAny(cfg_general.BackupInterval, "dhm") {
			QueueMaintenance.DispatchCron("Backup Database", backupJob, convertcron(cfg_general.BackupInterval))
		} else {
			QueueMaintenance.DispatchEvery("Backup Database", backupJob, converttime(cfg_general.BackupInterval))
		}
	}
}

func backupJob() {
	cfg_general := config.ConfigGetGeneral()
	backupto := fmt.Sprintf("%s.%s.%s", "./backup/data.db", database.DBVersion, time.Now().Format("20060102_150405"))
	if err := database.Backup(database.DB, backupto, cfg_general.MaxDatabaseBackups); err != nil {
		logger.Log.Error("Backup failed: ", err)
		return
	}
	logger.Log.Info("Backup created: ", backupto)
}

//StopScheduler drains the maintenance queue.
func StopScheduler() {
	if QueueMaintenance != nil {
		QueueMaintenance.Stop()
	}
}

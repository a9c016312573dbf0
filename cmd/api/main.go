package main

import (
	"fmt"
	"net/http"

	"github.com/checkinhq/checkin-backend-go/internal/config"
	appHTTP "github.com/checkinhq/checkin-backend-go/internal/handler/http"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/cron"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/database"
	"github.com/checkinhq/checkin-backend-go/internal/pkg/erp"
	"github.com/checkinhq/checkin-backend-go/internal/repository/postgresql"
	attendanceService "github.com/checkinhq/checkin-backend-go/internal/service/attendance"
	relayService "github.com/checkinhq/checkin-backend-go/internal/service/relay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	deviceLogRepo := postgresql.NewDeviceLogRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	erpClient := erp.NewClient(cfg.ERP)

	attendanceSvc := attendanceService.NewAttendanceService(deviceLogRepo, employeeRepo, cfg.Snapshot.ExcludedEmployeeIDs)
	relaySvc := relayService.NewRelayService(erpClient, attendanceSvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-snapshot-refresh", cfg.Snapshot.RefreshInterval, attendanceSvc.RefreshSnapshot)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	reportHandler := appHTTP.NewReportHandler(attendanceSvc)
	relayHandler := appHTTP.NewRelayHandler(relaySvc)

	router := appHTTP.NewRouter(
		attendanceHandler,
		employeeHandler,
		reportHandler,
		relayHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

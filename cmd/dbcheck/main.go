package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/config"
	"nfm-facility/app/database"
)

func main() {
	month := flag.String("month", time.Now().Format("2006-01"), "month to aggregate, YYYY-MM")
	flag.Parse()

	start, err := time.Parse("2006-01", *month)
	if err != nil {
		log.Fatalf("invalid -month %q: %v", *month, err)
	}
	end := start.AddDate(0, 1, -1)

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Testing attendance aggregation query...")
	workers, err := database.ListWorkers(ctx, db, false)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	attendance, err := database.ListAttendance(ctx, db, start, end)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	engine := aggregation.New(aggregation.DefaultPolicy())
	rows, err := engine.ComputeLaborTotals(workers, attendance, start, end, false)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range rows {
		fmt.Printf("%-8s %-28s present=%-3d absent=%-3d hours=%-7.2f ot=%-6.2f pay=%s\n",
			r.WorkerCode, r.FullName, r.DaysPresent, r.DaysAbsent, r.PayableHours, r.PayableOvertimeHours, r.TotalPay)
	}
	fmt.Printf("Test complete: %d workers, %d attendance rows in %s.\n", len(rows), len(attendance), *month)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tailorcart/internal/config"
	"tailorcart/internal/db"
	"tailorcart/internal/importer"
	catalogrepo "tailorcart/internal/repository/catalog"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a catalog or delivery-options CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp, err := importer.NewCSVImporter(f, catalogrepo.NewPostgres(pool, nil))
	if err != nil {
		log.Fatalf("read file: %v", err)
	}

	start := time.Now()
	stats, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %s file: %d vendors, %d items, %d fabrics, %d delivery options in %s\n",
		imp.Kind(), stats.Vendors, stats.Items, stats.Fabrics, stats.Delivery, time.Since(start).Truncate(time.Millisecond))
}

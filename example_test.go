package gridscan_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/gridscan"
	"github.com/tsawler/gridscan/config"
	"github.com/tsawler/gridscan/ocr"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_extractTables() {
	tables, err := gridscan.Open("scan.png").Tables()
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range tables {
		fmt.Printf("%d x %d table at %+v\n", t.NbRows(), t.NbColumns(), t.BBox())
	}
}

func Example_extractWithOptions() {
	tables, err := gridscan.Open("invoice.tiff").
		ImplicitRows().      // Split rows holding several lines of text
		BorderlessTables().  // Also look for tables without rules
		BorderlessHeaders(). // Add a header row above bordered tables
		Tables()
	_ = tables
	_ = err
}

func Example_ocr() {
	client, err := ocr.New()
	if err != nil {
		log.Fatal(err) // ErrOCRNotEnabled without -tags ocr
	}
	defer client.Close()

	tables, err := gridscan.Open("scan.png").OCR(client).MinConfidence(60).Tables()
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range tables {
		for _, row := range t.Content {
			fmt.Println(row)
		}
	}
}

func Example_hocr() {
	doc, err := os.ReadFile("scan.hocr")
	if err != nil {
		log.Fatal(err)
	}
	words, err := ocr.ParseHOCR(doc)
	if err != nil {
		log.Fatal(err)
	}

	tables, err := gridscan.Open("scan.png").Words(words...).Tables()
	_ = tables
	_ = err
}

func Example_batch() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatal(err)
	}

	results, err := gridscan.New().
		Configure(cfg).
		ExtractFiles(context.Background(), []string{"page1.png", "page2.png"}, cfg.Workers)
	if err != nil {
		log.Fatal(err)
	}
	for i, tables := range results {
		fmt.Printf("page %d: %d tables\n", i+1, len(tables))
	}
}

func Example_must() {
	tables := gridscan.Must(gridscan.Open("scan.png").Tables())
	_ = tables
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	var dsn, out, tables string
	flag.StringVar(&dsn, "dsn", os.Getenv("BLOCKGRID_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&tables, "tables", "worlds,blocks", "comma-separated tables to generate")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or BLOCKGRID_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext | gen.WithDefaultQuery,
	})
	g.UseDB(db)
	var models []any
	for _, table := range strings.Split(tables, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}
		models = append(models, g.GenerateModel(table))
	}
	if len(models) == 0 {
		log.Fatal("no tables selected")
	}
	g.ApplyBasic(models...)
	g.Execute()

	fmt.Printf("generated %d blockgrid models at %s\n", len(models), out)
}

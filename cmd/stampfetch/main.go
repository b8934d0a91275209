// Command stampfetch downloads a stamp pattern pack into a local
// directory and verifies the patterns decode.
package main

import (
	"flag"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"

	"terragen/internal/stamp"
)

func main() {
	var (
		url   = flag.String("url", "", "go-getter source URL of the stamp pack (git::, http, s3, gcs, file paths)")
		out   = flag.String("o", "./stamps", "output directory")
		clean = flag.Bool("clean", false, "remove the output directory before downloading")
	)
	flag.Parse()

	if *url == "" {
		log.Fatal("a source -url is required")
	}

	if *clean {
		if err := os.RemoveAll(*out); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("downloading stamp pack from %s", *url)
	if err := get.Get(*out, *url); err != nil {
		log.Fatalf("download: %v", err)
	}

	bank := stamp.NewBank()
	n, err := bank.LoadDir(*out)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	log.Printf("downloaded %d usable stamps into %s", n, *out)
	for _, s := range bank.List() {
		size := s.Pattern.Size()
		log.Printf("  %-20s %-14s %dx%d", s.Name, s.Category, size, size)
	}
}

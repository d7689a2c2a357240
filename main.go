package main

import (
	"log"
	"os"

	"httpmsg/internal/bootstrap"
	"httpmsg/internal/cgi"
	"httpmsg/internal/config"
	"httpmsg/internal/version"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		log.Println(version.GetVersion())
		os.Exit(0)
	}

	conf, err := config.MustLoad()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}

	app := bootstrap.New(conf, cgi.ParseEnviron(os.Environ()), os.Stdin, os.Stdout)
	if err = app.Run(); err != nil {
		log.Printf("Request failed: %s", err)
		os.Exit(1)
	}
}

// Command junctree builds and eliminates junction trees for factor graph
// problems described in YAML.
//
//	junctree tree      -f problem.yaml
//	junctree eliminate -f problem.yaml --workers 4 --granularity variable --metrics
package main

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

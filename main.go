package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/adsmood/ctv-vast-engine/config"
	"github.com/adsmood/ctv-vast-engine/metrics"
	prometheusmetrics "github.com/adsmood/ctv-vast-engine/metrics/prometheus"
	"github.com/adsmood/ctv-vast-engine/router"
	"github.com/adsmood/ctv-vast-engine/server"
)

// Rev holds the binary revision string.
// Set at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(Rev, cfg); err != nil {
		glog.Exitf("vast-engine failed: %v", err)
	}
}

const configFileName = "vast-engine"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(revision string, cfg *config.Configuration) error {
	var metricsEngine metrics.Engine = &metrics.NoopEngine{}
	var promMetrics *prometheusmetrics.Metrics
	if cfg.Metrics.Prometheus.Port != 0 {
		promMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus.Namespace, cfg.Metrics.Prometheus.Subsystem)
		metricsEngine = promMetrics
	}

	r, err := router.New(cfg, revision, metricsEngine)
	if err != nil {
		return err
	}

	corsRouter := router.SupportCORS(r, cfg.CORS)
	server.Listen(cfg, corsRouter, router.Admin(revision), metricsEngine, promMetrics)

	glog.Flush()
	return nil
}

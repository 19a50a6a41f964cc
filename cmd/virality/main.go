package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/clipsense/virality/infra/config"
	"github.com/clipsense/virality/internal/concurrent"
	"github.com/clipsense/virality/internal/dataset"
	"github.com/clipsense/virality/internal/media"
	"github.com/clipsense/virality/internal/model"
	"github.com/clipsense/virality/internal/nn"
	"github.com/clipsense/virality/internal/predict"
	"github.com/clipsense/virality/internal/storage"
	jsonstore "github.com/clipsense/virality/internal/storage/file/json"
	"github.com/clipsense/virality/internal/train"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: virality <train|predict> [flags]")
		os.Exit(2)
	}

	settings := config.MustLoadSettings()

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(settings, os.Args[2:])
	case "predict":
		err = runPredict(settings, os.Args[2:])
	default:
		err = fmt.Errorf("unknown command '%s'", os.Args[1])
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func runTrain(settings config.Settings, args []string) error {
	flags := flag.NewFlagSet("train", flag.ExitOnError)
	input := flags.String("input", "", "path to the training csv")
	mode := flags.String("mode", settings.Mode, "classification or regression")
	epochs := flags.Int("epochs", settings.Epochs, "number of epochs")
	configKey := flags.String("config", "", "load the training config from infra/config/<key>.json")
	metricsPort := flags.Int("metrics-port", 0, "port to expose prometheus metrics on (0 disables)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("no input file given")
	}

	if *metricsPort > 0 {
		concurrent.Async(func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(fmt.Sprintf(":%d", *metricsPort), nil); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		})
	}

	text, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("could not read input '%s': %w", *input, err)
	}

	ds, err := dataset.Parse(string(text), settings.Target)
	if err != nil {
		return err
	}

	cfg := train.Config{
		Name:      settings.ModelName,
		Mode:      nn.Mode(*mode),
		Epochs:    *epochs,
		BatchSize: settings.BatchSize,
		Rate:      settings.Rate,
		Dropout:   settings.Dropout,
		Split:     settings.Split,
		Seed:      settings.Seed,
	}
	if *configKey != "" {
		config.MustLoad(*configKey, &cfg)
	}

	trainer := train.New(cfg)
	trainer.OnEpoch(func(e train.Epoch) {
		log.Info().
			Int("epoch", e.Epoch).
			Float64("loss", e.Loss).
			Float64("val_loss", e.Validation.Loss).
			Float64("accuracy", e.Validation.Accuracy).
			Float64("mae", e.Validation.MAE).
			Msg("epoch done")
	})

	// a stop request ends the run cleanly at the next epoch boundary
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info().Msg("stop requested")
		cancel()
	}()

	artifact, history, err := trainer.Fit(ctx, ds)
	if err != nil {
		return err
	}

	shard := jsonstore.Shard(settings.StorageDir)

	models, err := shard(storage.ModelsDir)
	if err != nil {
		return err
	}
	if err := models.Store(storage.Key{Name: artifact.Name, Label: "artifact"}, artifact); err != nil {
		return fmt.Errorf("could not store artifact: %w", err)
	}

	runs, err := shard(storage.HistoryDir)
	if err != nil {
		return err
	}
	if err := runs.Store(storage.Key{Name: artifact.Name, Run: artifact.Run, Label: "history"}, history); err != nil {
		return fmt.Errorf("could not store history: %w", err)
	}

	last, _ := history.Last()
	log.Info().
		Str("run", artifact.Run).
		Str("status", string(history.Status)).
		Float64("loss", last.Loss).
		Msg("model stored")

	return nil
}

func runPredict(settings config.Settings, args []string) error {
	flags := flag.NewFlagSet("predict", flag.ExitOnError)
	input := flags.String("input", "", "path to the media file")
	title := flags.String("title", "", "video title")
	description := flags.String("description", "", "video description")
	useFfmpeg := flags.Bool("ffmpeg", false, "decode through ffmpeg for real video containers")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("no input file given")
	}

	models, err := jsonstore.Shard(settings.StorageDir)(storage.ModelsDir)
	if err != nil {
		return err
	}

	artifact := new(model.Artifact)
	if err := models.Load(storage.Key{Name: settings.ModelName, Label: "artifact"}, artifact); err != nil {
		return fmt.Errorf("could not load model '%s': %w", settings.ModelName, err)
	}

	handle := predict.NewHandle()
	if err := handle.Load(artifact); err != nil {
		return err
	}
	defer handle.Dispose()

	var result predict.Result
	if *useFfmpeg {
		decoder, err := media.NewFfmpeg(log.Logger)
		if err != nil {
			return err
		}
		clip, err := decoder.DecodeFile(context.Background(), *input)
		if err != nil {
			return err
		}
		result, err = handle.PredictClip(clip, *title, *description)
		if err != nil {
			return err
		}
	} else {
		b, err := os.ReadFile(*input)
		if err != nil {
			return fmt.Errorf("could not read input '%s': %w", *input, err)
		}
		result, err = handle.Predict(b, *title, *description)
		if err != nil {
			return err
		}
	}

	if result.Mode == nn.Regression {
		fmt.Printf("predicted views: %.0f (score %.4f)\n", result.Views, result.Score)
	} else {
		verdict := "not viral"
		if result.Viral {
			verdict = "viral"
		}
		fmt.Printf("%s (probability %.4f)\n", strings.ToUpper(verdict), result.Score)
	}

	return nil
}

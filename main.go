package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-feedback-triage/internal/api"
	"go-feedback-triage/internal/config"
	"go-feedback-triage/internal/database"
	triageHandler "go-feedback-triage/internal/handler/triage"
	"go-feedback-triage/internal/mail"
	"go-feedback-triage/internal/notification"
	"go-feedback-triage/internal/reply"
	establishmentRepository "go-feedback-triage/internal/repository/establishment"
	responsePolicyRepository "go-feedback-triage/internal/repository/responsepolicy"
	reviewRepository "go-feedback-triage/internal/repository/review"
	rewardRepository "go-feedback-triage/internal/repository/reward"
	"go-feedback-triage/internal/reward"

	gpt "go-feedback-triage/internal/gpt"
	gptutils "go-feedback-triage/internal/gpt/utils"

	Firestore "firebase.google.com/go/v4"

	reviewEventPublisher "go-feedback-triage/internal/eventpublisher/review"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func main() {

	cnf := config.LoadConfigOrPanic()
	setupLogger(cnf.Server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	app := createFirestoreAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.Firebase)
	defer firestoreClient.Close()

	// drafts still work without the tokenizer, the review text is just not truncated
	var truncator reply.Truncator
	if tokenizer, err := gptutils.NewTokenzier(); err != nil {
		log.Warn().Err(err).Msg("tokenizer unavailable, review text will not be truncated")
	} else {
		truncator = tokenizer
	}

	gptClient, err := gpt.NewClient(gpt.ClientConfig{
		ApiUrl:      cnf.OpenAI.ApiUrl,
		ApiKey:      cnf.OpenAI.ApiKey,
		Model:       cnf.OpenAI.Model,
		Temperature: cnf.OpenAI.Temperature,
	})
	if err != nil {
		panic(err)
	}
	drafter := reply.New(gptClient, truncator, reply.Config{
		MaxOutputTokens: cnf.OpenAI.MaxOutputTokens,
		MaxReviewTokens: cnf.OpenAI.MaxReviewTokens,
	})

	mailer, err := mail.NewSendGridMailer(cnf.SendGrid)
	if err != nil {
		panic(err)
	}
	dispatcher := notification.NewDispatcher(mailer, cnf.Server.InboxUrl)

	reviewRepo := reviewRepository.New(&firestoreClient)
	rewardRepo := rewardRepository.New(&firestoreClient)
	policyRepo := responsePolicyRepository.New(&firestoreClient)
	establishmentRepo := establishmentRepository.New(&firestoreClient)

	reviewPublisher := reviewEventPublisher.ReviewPublisherFactory(reviewRepo).OnReviewCreated()
	triage := triageHandler.New(reviewPublisher, reviewRepo, establishmentRepo, policyRepo, drafter, dispatcher)

	server := api.NewServer(cnf.Server.Addr, api.RouterConfig{
		Establishments: establishmentRepo,
		Reviews:        reviewRepo,
		Rewards:        rewardRepo,
		Policies:       policyRepo,
		Drafter:        drafter,
		Source:         reward.GlobalSource,
	})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return triage.EventHandler(gctx)
	})
	group.Go(func() error {
		return reviewPublisher.Start(gctx)
	})
	group.Go(func() error {
		return server.Run(gctx)
	})

	select {
	case <-sigs:
		// Received a termination signal, continue to shutdown
	case <-gctx.Done():
		// errgroup encountered an error, continue to shutdown
	}

	cancel() // cancel the root context to signal all the consumers

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		if err != nil && !database.IsContextError(err) {
			log.Error().Err(err).Msg("service stopped with an error")
			os.Exit(1)
		}
		os.Exit(0)
	case <-time.After(time.Second * 5):
		// Give enough time to close all the pending resources
	case <-sigs:
		// Forcefully terminate the app with a signal
	}

	os.Exit(1)
}

func setupLogger(cnf config.Server) {
	level, err := zerolog.ParseLevel(cnf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

func createFirestoreAppOrPanic(ctx context.Context, cnf config.Firebase) *Firestore.App {
	FirestoreCreds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(FirestoreCreds)
	app, err := Firestore.NewApp(ctx, nil, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createFirestoreClientOrPanic(ctx context.Context, app *Firestore.App, cnf config.Firebase) database.FirestoreClient {
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		panic(err)
	}
	return database.New(firestoreClient, cnf.WriteTimeoutSecond)
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go-feedback-triage/internal/config"
	"go-feedback-triage/internal/database"
	model "go-feedback-triage/internal/model"
	establishmentRepository "go-feedback-triage/internal/repository/establishment"
	responsePolicyRepository "go-feedback-triage/internal/repository/responsepolicy"
	reviewRepository "go-feedback-triage/internal/repository/review"
	rewardRepository "go-feedback-triage/internal/repository/reward"

	Firestore "firebase.google.com/go/v4"

	"google.golang.org/api/option"
)

type seedFile struct {
	Establishment model.Establishment  `json:"establishment"`
	Policy        model.ResponsePolicy `json:"policy"`
	Rewards       []model.RewardOption `json:"rewards"`
}

func main() {

	seedPath := flag.String("seed", "./client/seed/bistro.json", "establishment, policy and rewards to load")
	tail := flag.Bool("tail", false, "print newly created reviews until interrupted")
	flag.Parse()

	cnf := config.LoadFirebaseConfigOrPanic()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := createFirestoreAppOrPanic(ctx, cnf)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf)
	defer firestoreClient.Close()

	if err := readSeedFromJsonAndSaveToFirestore(ctx, &firestoreClient, *seedPath); err != nil {
		panic(err)
	}

	if !*tail {
		return
	}

	reviewRepo := reviewRepository.New(&firestoreClient)
	for e := range reviewRepo.NotifyOnAdded(ctx, nil) {
		if e.Err != nil {
			fmt.Println(e.Err)
			continue
		}
		fmt.Printf("Newly added review: %s (%s, %d stars, %s)\n",
			e.Review.Id, e.Review.EstablishmentId, e.Review.Rating, e.Review.Visibility)
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

func readSeedFromJsonAndSaveToFirestore(ctx context.Context, db database.Client, filePath string) error {
	jsonFile, err := os.Open(filePath)
	if err != nil {
		fmt.Println("Error opening JSON file:", err)
		return err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		fmt.Println("Error reading JSON file:", err)
		return err
	}

	var seed seedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		fmt.Println("Error unmarshalling JSON:", err)
		return err
	}

	if err := establishmentRepository.New(db).Create(ctx, seed.Establishment); err != nil {
		fmt.Println("Error saving establishment to Firestore:", err)
		return err
	}

	seed.Policy.EstablishmentId = seed.Establishment.Id
	if err := responsePolicyRepository.New(db).Save(ctx, seed.Policy); err != nil {
		fmt.Println("Error saving response policy to Firestore:", err)
		return err
	}

	if err := rewardRepository.New(db).Upsert(ctx, seed.Establishment.Id, seed.Rewards); err != nil {
		fmt.Println("Error saving rewards to Firestore:", err)
		return err
	}

	fmt.Printf("Establishment %s saved to Firestore with %d rewards.\n", seed.Establishment.Id, len(seed.Rewards))
	return nil
}

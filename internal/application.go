package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/config"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/repository"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/service"
	"github.com/rocketscienceinc/tictactoe-blinks/transport/rest"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage backend")
	ErrZeroRecipient  = errors.New("actions recipient must not be the system program")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := initGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	recipient, err := parseRecipient(conf.Actions.Recipient)
	if err != nil {
		return err
	}

	rpcClient := rpc.New(conf.Solana.RPCURL)
	defer func() {
		if err = rpcClient.Close(); err != nil {
			log.Error("could not close rpc client", "error", err)
		}
	}()

	transactions := service.NewTransactionBuilder(rpcClient, conf.Solana.Commitment)

	routes := []service.Route{
		{Name: "tictactoe", Path: "/api/actions/tictactoe", SelfTransfer: true, Lamports: conf.Actions.Lamports},
	}

	var minter service.Minter
	if conf.Minter.Enabled() {
		minter = service.NewHTTPMinter(conf.Minter.URL, conf.Minter.APIKey, conf.Minter.Timeout)
		routes = append(routes, service.Route{
			Name:      "mint",
			Path:      "/api/actions/mint",
			Recipient: recipient,
			Lamports:  conf.Actions.Lamports,
			MintOnWin: true,
		})
	}

	gameService := service.NewGameService(logger, gameRepo, transactions, minter, conf.Minter.Symbol)
	donationService := service.NewDonationService(logger, transactions, recipient, conf.Actions.DonateAmounts)

	handlers := make([]*rest.GameActionHandler, 0, len(routes))
	for _, route := range routes {
		handlers = append(handlers, rest.NewGameActionHandler(logger, route, gameService, conf.BaseURL))
	}

	router := rest.NewRouter(logger, handlers, rest.NewDonateHandler(logger, donationService, conf.BaseURL))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage, "routes", len(routes))
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

func initGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageMemory, "":
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage.Connection, conf.Redis.TTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}

func parseRecipient(address string) (solana.PublicKey, error) {
	recipient, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid actions recipient: %w", err)
	}

	if recipient.IsZero() {
		return solana.PublicKey{}, ErrZeroRecipient
	}

	return recipient, nil
}

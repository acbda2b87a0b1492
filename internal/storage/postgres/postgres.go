package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresStorage — Postgres реализация storage.Storage
type PostgresStorage struct {
	pool     *pgxpool.Pool
	foods    *foodsStorage
	meals    *mealsStorage
	sleep    *sleepStorage
	weight   *weightStorage
	exercise *exerciseStorage
	profile  *profileStorage
	pantry   *pantryStorage
	routines *routinesStorage
}

// New создаёт пул соединений и проверяет доступность базы
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:     pool,
		foods:    &foodsStorage{pool: pool},
		meals:    &mealsStorage{pool: pool},
		sleep:    &sleepStorage{pool: pool},
		weight:   &weightStorage{pool: pool},
		exercise: &exerciseStorage{pool: pool},
		profile:  &profileStorage{pool: pool},
		pantry:   &pantryStorage{pool: pool},
		routines: &routinesStorage{pool: pool},
	}, nil
}

func (p *PostgresStorage) Foods() storage.FoodsStorage       { return p.foods }
func (p *PostgresStorage) Meals() storage.MealsStorage       { return p.meals }
func (p *PostgresStorage) Sleep() storage.SleepStorage       { return p.sleep }
func (p *PostgresStorage) Weight() storage.WeightStorage     { return p.weight }
func (p *PostgresStorage) Exercise() storage.ExerciseStorage { return p.exercise }
func (p *PostgresStorage) Profile() storage.ProfileStorage   { return p.profile }
func (p *PostgresStorage) Pantry() storage.PantryStorage     { return p.pantry }
func (p *PostgresStorage) Routines() storage.RoutinesStorage { return p.routines }

// Close закрывает пул соединений
func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// mapErr переводит ошибки pgx в доменные sentinel-ошибки
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrConflict
	}
	return err
}

// dateRange builds the optional date filter shared by ledger queries.
func dateRange(from, to string, args []any) (string, []any) {
	clause := ""
	if from != "" {
		args = append(args, from)
		clause += " AND date >= $" + strconv.Itoa(len(args))
	}
	if to != "" {
		args = append(args, to)
		clause += " AND date <= $" + strconv.Itoa(len(args))
	}
	return clause, args
}

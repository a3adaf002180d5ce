package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codingfighters/trivia/go/internal/dbconfig"
	"github.com/codingfighters/trivia/go/internal/game/pool"
)

// seedGame is one demo lobby to insert.
type seedGame struct {
	Topics        []string
	QuestionCount int
	IsPrivate     bool
	Creator       string
	Users         []string
}

func main() {
	// 1) Demo lobbies covering each topic combination
	games := []seedGame{
		{Topics: []string{pool.TopicJava}, QuestionCount: 5, Creator: "alice", Users: []string{"alice"}},
		{Topics: []string{pool.TopicRust, pool.TopicKotlin}, QuestionCount: 10, Creator: "bob", Users: []string{"bob", "carol"}},
		{Topics: pool.Topics(), QuestionCount: 15, IsPrivate: true, Creator: "carol", Users: []string{"carol"}},
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	dbpool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	// 3) Insert and count
	var inserted, errs int
	for _, g := range games {
		_, err := dbpool.Exec(context.Background(), `
            INSERT INTO games (
              id, topics, question_count, is_private, is_started,
              creator, users, created_at
            ) VALUES (
              $1,$2,$3,$4,FALSE,$5,$6,$7
            )
        `,
			uuid.New(), g.Topics, g.QuestionCount, g.IsPrivate,
			g.Creator, g.Users, time.Now().UTC(),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting game by %s: %v\n", g.Creator, err)
			errs++
			continue
		}
		inserted++
	}

	// 4) Print summary
	fmt.Printf("Games seed complete: %d inserted, %d errors\n", inserted, errs)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/d60-Lab/dazzlr/config"
	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/pkg/apperr"
	"github.com/d60-Lab/dazzlr/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// N 个用户并发关注同一个大 V（关注表 + 粉丝表同事务），再重复一轮验证冲突收敛，最后分页查询
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	N := envInt("N", 5000)
	CONC := envInt("CONC", 8)
	PAGE := envInt("PAGE", 50)

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	rel := service.NewRelationshipService(tx, userRepo, followRepo, fanRepo, cfg.Storage.Timeout)

	newUser := func(prefix string) model.User {
		id := model.NewID()
		return model.User{
			ID: id, Handle: "@" + prefix + "-" + id[len(id)-12:], Fullname: prefix,
			Email: id + "@bench.local", PasswordHash: "x", AccountType: model.AccountPersonal, JoinedAt: time.Now(),
		}
	}
	celeb := newUser("celeb")
	if err := userRepo.Create(ctx, &celeb); err != nil {
		panic(err)
	}
	users := make([]model.User, N)
	for i := range users {
		users[i] = newUser("u")
	}
	if err := db.CreateInBatches(&users, 1000).Error; err != nil {
		panic(err)
	}

	run := func() ([]time.Duration, int64, time.Duration) {
		feed := make(chan int, N)
		for i := 0; i < N; i++ {
			feed <- i
		}
		close(feed)
		out := make(chan time.Duration, N)
		var dup atomic.Int64
		done := make(chan struct{})
		t0 := time.Now()
		for w := 0; w < CONC; w++ {
			go func() {
				for i := range feed {
					st := time.Now()
					err := rel.Follow(ctx, users[i].ID, celeb.ID)
					out <- time.Since(st)
					switch {
					case errors.Is(err, apperr.AlreadyExists):
						dup.Add(1)
					case err != nil:
						panic(err)
					}
				}
				done <- struct{}{}
			}()
		}
		for w := 0; w < CONC; w++ {
			<-done
		}
		total := time.Since(t0)
		close(out)
		recs := make([]time.Duration, 0, N)
		for d := range out {
			recs = append(recs, d)
		}
		return recs, dup.Load(), total
	}

	first, _, firstTotal := run()
	second, dups, secondTotal := run()

	q0 := time.Now()
	_, _ = rel.ListFans(ctx, celeb.ID, 1, PAGE)
	fansDur := time.Since(q0)
	fans := must(fanRepo.Count(ctx, celeb.ID))

	q1 := time.Now()
	_, _ = rel.ListFollowing(ctx, users[0].ID, 1, PAGE)
	follDur := time.Since(q1)

	fmt.Printf("N=%d CONC=%d PAGE=%d\n", N, CONC, PAGE)
	fmt.Printf("Follow (tx, 2 writes): total=%v per op=%v p50=%v p95=%v p99=%v\n",
		firstTotal, firstTotal/time.Duration(N), pct(first, 0.50), pct(first, 0.95), pct(first, 0.99))
	fmt.Printf("Repeat follow: total=%v already-exists=%d p95=%v\n", secondTotal, dups, pct(second, 0.95))
	fmt.Printf("Fan rows: %d\n", fans)
	fmt.Printf("Query fans(%d) latency: %v\n", PAGE, fansDur)
	fmt.Printf("Query following(%d) latency: %v\n", PAGE, follDur)
}

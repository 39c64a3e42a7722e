package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/d60-Lab/dazzlr/config"
	"github.com/d60-Lab/dazzlr/internal/cache"
	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/internal/repository"
	"github.com/d60-Lab/dazzlr/internal/service"
	"github.com/d60-Lab/dazzlr/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
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

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func seedUser(ctx context.Context, users repository.UserRepository, prefix string) *model.User {
	id := model.NewID()
	u := &model.User{
		ID:           id,
		Handle:       "@" + prefix + "-" + id[len(id)-12:],
		Fullname:     prefix,
		Email:        id + "@bench.local",
		PasswordHash: "x",
		AccountType:  model.AccountPersonal,
		JoinedAt:     time.Now(),
	}
	if err := users.Create(ctx, u); err != nil {
		panic(err)
	}
	return u
}

// 读时扩散的代价随关注人数线性增长：F 个作者各 P 条帖子，测 GetFeed 延迟
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	F := envInt("FOLLOWING", 200)
	P := envInt("POSTS", 20)
	READS := envInt("READS", 200)
	CONC := envInt("CONC", 8)

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	fanRepo := repository.NewFanRepository(db)
	postRepo := repository.NewPostRepository(db)

	rel := service.NewRelationshipService(tx, userRepo, followRepo, fanRepo, cfg.Storage.Timeout)
	snaps := cache.NewUserSnapshots(userRepo, must(database.InitRedis(cfg)), cfg.Redis.TTL)
	feed := service.NewFeedService(tx, followRepo, postRepo, snaps, service.FeedOptions{
		StorageTimeout:   cfg.Storage.Timeout,
		MaxAncestorDepth: cfg.Feed.MaxAncestorDepth,
		MaxConcurrency:   cfg.Feed.MaxConcurrency,
	})

	reader := seedUser(ctx, userRepo, "reader")
	base := time.Now().Add(-time.Duration(F*P) * time.Second)
	seedStart := time.Now()
	for i := 0; i < F; i++ {
		author := seedUser(ctx, userRepo, "author")
		if err := rel.Follow(ctx, reader.ID, author.ID); err != nil {
			panic(err)
		}
		posts := make([]*model.Post, P)
		for j := range posts {
			posts[j] = &model.Post{
				ID:        model.NewID(),
				AuthorID:  author.ID,
				Content:   fmt.Sprintf("post %d by author %d", j, i),
				CreatedAt: base.Add(time.Duration(i*P+j) * time.Second),
			}
		}
		if err := db.CreateInBatches(posts, 500).Error; err != nil {
			panic(err)
		}
	}
	seedDur := time.Since(seedStart)

	durations := make([]time.Duration, 0, READS)
	var mu sync.Mutex
	jobs := make(chan struct{}, READS)
	for i := 0; i < READS; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	var size int
	var wg sync.WaitGroup
	t0 := time.Now()
	for w := 0; w < CONC; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				st := time.Now()
				posts, err := feed.GetFeed(ctx, reader.ID)
				d := time.Since(st)
				if err != nil {
					panic(err)
				}
				mu.Lock()
				durations = append(durations, d)
				size = len(posts)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(t0)

	fmt.Printf("FOLLOWING=%d POSTS=%d READS=%d CONC=%d\n", F, P, READS, CONC)
	fmt.Printf("Seed: %v\n", seedDur)
	fmt.Printf("Feed size: %d posts\n", size)
	fmt.Printf("Feed read latency: total=%v p50=%v p95=%v p99=%v\n",
		total, pct(durations, 0.50), pct(durations, 0.95), pct(durations, 0.99))
	fmt.Printf("Snapshot source loads: %d\n", snaps.SourceLoads())
}

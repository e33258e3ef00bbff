package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/KOMKZ/go-yogan-content/handler"
	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/service"
)

// WarmOptions 预热范围
type WarmOptions struct {
	Pages    int
	PageSize int
	Workers  int
}

// WarmResult Filled 为有数据的页，Empty 为检索无结果的页（不会写缓存）
type WarmResult struct {
	Filled int64
	Empty  int64
	Failed int64
}

// Warmer 用协程池并发读取列表前 N 页，读路径本身会写入缓存
type Warmer struct {
	svcs   *service.Services
	logger *logger.CtxZapLogger
}

func NewWarmer(svcs *service.Services, log *logger.CtxZapLogger) *Warmer {
	if log == nil {
		log = logger.GetLogger("warm")
	}
	return &Warmer{svcs: svcs, logger: log}
}

// Warm 预热影片列表（默认排序）与分类列表
// 缓存错误会汇总返回，单页失败不影响其它页
func (w *Warmer) Warm(ctx context.Context, opts WarmOptions) (WarmResult, error) {
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 50
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create warm pool: %w", err)
	}
	defer pool.Release()

	var (
		res  WarmResult
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	submit := func(name string, page int, read func(context.Context) (bool, error)) {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			found, err := read(ctx)
			switch {
			case err != nil:
				atomic.AddInt64(&res.Failed, 1)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s page %d: %w", name, page, err))
				mu.Unlock()
			case found:
				atomic.AddInt64(&res.Filled, 1)
			default:
				atomic.AddInt64(&res.Empty, 1)
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("submit %s page %d: %w", name, page, err))
			mu.Unlock()
		}
	}

	for page := 1; page <= opts.Pages; page++ {
		p := page
		submit("films", p, func(ctx context.Context) (bool, error) {
			_, found, err := w.svcs.Films.GetFilms(ctx, p, opts.PageSize, nil, handler.DefaultSort)
			return found, err
		})
		submit("genres", p, func(ctx context.Context) (bool, error) {
			_, found, err := w.svcs.Genres.GetGenres(ctx, p, opts.PageSize)
			return found, err
		})
	}
	wg.Wait()

	w.logger.InfoCtx(ctx, "cache warm finished",
		zap.Int("pages", opts.Pages),
		zap.Int("page_size", opts.PageSize),
		zap.Int64("filled", res.Filled),
		zap.Int64("empty", res.Empty),
		zap.Int64("failed", res.Failed))

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return res, errors.Join(errs...)
}

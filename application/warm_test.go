package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOMKZ/go-yogan-content/logger"
	"github.com/KOMKZ/go-yogan-content/testutil"
)

func TestWarmer_FillsListingPages(t *testing.T) {
	fx := testutil.NewContentFixture(t)
	w := NewWarmer(fx.Services, logger.NewNopLogger("warm"))

	// 6 部影片、3 个分类，每页 2 条
	res, err := w.Warm(context.Background(), WarmOptions{Pages: 3, PageSize: 2, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Filled)
	assert.Equal(t, int64(1), res.Empty, "分类第 3 页没有数据")
	assert.Zero(t, res.Failed)
	assert.Len(t, fx.Redis.Keys(), 5, "空页不写缓存")
}

func TestWarmer_WarmedPageIsServedFromCache(t *testing.T) {
	fx := testutil.NewContentFixture(t)
	w := NewWarmer(fx.Services, logger.NewNopLogger("warm"))

	_, err := w.Warm(context.Background(), WarmOptions{Pages: 1, PageSize: 50})
	require.NoError(t, err)

	// 清空检索后仍能从缓存读到第一页
	require.NoError(t, fx.Store.Close())
	films, found, err := fx.Services.Films.GetFilms(context.Background(), 1, 50, nil, "-imdb_rating")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, films, 6)
}

func TestWarmer_CacheFailure(t *testing.T) {
	fx := testutil.NewContentFixture(t)
	fx.Redis.Close()

	w := NewWarmer(fx.Services, logger.NewNopLogger("warm"))
	res, err := w.Warm(context.Background(), WarmOptions{Pages: 2, PageSize: 10})
	assert.Error(t, err)
	assert.Equal(t, int64(4), res.Failed)
	assert.Zero(t, res.Filled)
}

func TestWarmer_Defaults(t *testing.T) {
	fx := testutil.NewContentFixture(t)
	w := NewWarmer(fx.Services, nil)

	res, err := w.Warm(context.Background(), WarmOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Filled, "默认预热第 1 页，每页 50 条")
}

package querycache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/repository"
)

func TestKeyIsCanonical(t *testing.T) {
	a := Key{Entity: EntityStudents, Tenant: "s1", Scope: "sch_admin", Filters: url.Values{"status": {"active"}, "class": {"10"}}}
	b := Key{Entity: EntityStudents, Tenant: "s1", Scope: "sch_admin", Filters: url.Values{"class": {"10"}, "status": {"active"}}}
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "q:students:s1:sch_admin:class=10&status=active", a.String())

	weird := Key{Entity: "teachers", Tenant: "a:b*"}
	assert.Equal(t, "q:teachers:a%3Ab%2A::", weird.String())
	assert.Equal(t, Prefix("teachers", "a:b*"), "q:teachers:a%3Ab%2A:")
}

func TestKeyWithCopiesFilters(t *testing.T) {
	base := Key{Entity: EntityStudents, Tenant: "s1", Filters: url.Values{"class": {"10"}}}
	next := base.With("query", "jo")
	assert.Equal(t, "", base.Filters.Get("query"))
	assert.Equal(t, "jo", next.Filters.Get("query"))
}

func TestGraphDependents(t *testing.T) {
	g := DefaultGraph()
	assert.Equal(t, []string{EntityStudents, EntityParents, EntitySchoolDashboard}, g.Dependents(EntityStudents))
	assert.Equal(t, []string{EntityClasses}, g.Dependents(EntityClasses))
	assert.Equal(t, []string{EntityAttendanceSimple, EntityAttendanceReports}, g.Dependents(EntityAttendanceSimple))
}

func newCache() *Cache {
	return New(repository.NewMemoryCacheRepository(), nil, time.Minute, nil, nil)
}

func TestFetchServesFromCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := newCache()
	key := Key{Entity: EntityTeachers, Tenant: "s1"}

	var calls int32
	load := func(context.Context) ([]string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return []string{"before"}, nil
		}
		return []string{"after"}, nil
	}

	v, hit, err := Fetch(ctx, c, key, load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"before"}, v)

	v, hit, err = Fetch(ctx, c, key, load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"before"}, v)

	require.NoError(t, c.Invalidate(ctx, EntityTeachers, "s1"))

	v, hit, err = Fetch(ctx, c, key, load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"after"}, v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateFollowsGraphWithinTenant(t *testing.T) {
	ctx := context.Background()
	c := newCache()

	parents := Key{Entity: EntityParents, Tenant: "s1", Filters: url.Values{"status": {"active"}}}
	dashboard := Key{Entity: EntitySchoolDashboard, Tenant: "s1"}
	otherTenant := Key{Entity: EntityParents, Tenant: "s2"}
	classes := Key{Entity: EntityClasses, Tenant: "s1"}

	for _, k := range []Key{parents, dashboard, otherTenant, classes} {
		_, _, err := Fetch(ctx, c, k, func(context.Context) (string, error) { return "v", nil })
		require.NoError(t, err)
	}

	require.NoError(t, c.Invalidate(ctx, EntityStudents, "s1"))

	hits := map[string]bool{}
	for _, k := range []Key{parents, dashboard, otherTenant, classes} {
		_, hit, err := Fetch(ctx, c, k, func(context.Context) (string, error) { return "v", nil })
		require.NoError(t, err)
		hits[k.String()] = hit
	}
	assert.False(t, hits[parents.String()])
	assert.False(t, hits[dashboard.String()])
	assert.True(t, hits[otherTenant.String()])
	assert.True(t, hits[classes.String()])
}

func TestFetchCoalescesConcurrentLoads(t *testing.T) {
	c := newCache()
	key := Key{Entity: EntitySubjects, Tenant: "s1"}

	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			v, _, err := Fetch(context.Background(), c, key, load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	// Give every caller time to join the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestLoadRacingInvalidationIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := newCache()
	key := Key{Entity: EntitySchools, Tenant: PlatformTenant}

	inLoad := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, _, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
			close(inLoad)
			<-release
			return "stale", nil
		})
		assert.NoError(t, err)
		done <- v
	}()

	<-inLoad
	require.NoError(t, c.Invalidate(ctx, EntitySchools, PlatformTenant))
	close(release)
	assert.Equal(t, "stale", <-done)

	v, hit, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "fresh", v)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := newCache()
	key := Key{Entity: EntityClasses, Tenant: "s1"}

	_, _, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "", errors.New("boom") })
	require.Error(t, err)

	v, hit, err := Fetch(ctx, c, key, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "ok", v)
}

type countingRecorder struct {
	hits, misses, writes int32
}

func (r *countingRecorder) RecordCacheOperation(hit bool, _ time.Duration) {
	if hit {
		atomic.AddInt32(&r.hits, 1)
		return
	}
	atomic.AddInt32(&r.misses, 1)
}

func (r *countingRecorder) ObserveCacheWrite(time.Duration) { atomic.AddInt32(&r.writes, 1) }

func TestFetchRecordsMetrics(t *testing.T) {
	rec := &countingRecorder{}
	c := New(repository.NewMemoryCacheRepository(), nil, time.Minute, nil, rec)
	key := Key{Entity: EntityRequests, Tenant: "s1"}
	load := func(context.Context) (string, error) { return "v", nil }

	_, _, _ = Fetch(context.Background(), c, key, load)
	_, _, _ = Fetch(context.Background(), c, key, load)

	assert.Equal(t, int32(1), rec.hits)
	assert.Equal(t, int32(1), rec.misses)
	assert.Equal(t, int32(1), rec.writes)
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	v, hit, err := Fetch(context.Background(), (*Cache)(nil), Key{Entity: "x"}, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)
}

// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build e2e

package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/ecodeclub/mall/internal/inventory/internal/repository/dao"
	testioc "github.com/ecodeclub/mall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestInventoryDAO(t *testing.T) {
	suite.Run(t, new(InventoryDAOTestSuite))
}

type InventoryDAOTestSuite struct {
	suite.Suite
	db  *egorm.Component
	dao dao.InventoryDAO
}

func (s *InventoryDAOTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(s.db))
	s.dao = dao.NewInventoryGORMDAO(s.db)
}

func (s *InventoryDAOTestSuite) TearDownTest() {
	require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `inventory_records`").Error)
}

// 最后一件只能被一个请求抢到, 库存不会被扣成负数
func (s *InventoryDAOTestSuite) TestReserve_ConcurrentLastUnit() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.dao.Upsert(ctx, dao.InventoryRecord{
		ProductID: 1001,
		Stock:     1,
		Track:     1,
	}))

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := s.dao.Reserve(ctx, 1001, 0, 1)
			errs[idx] = err
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, dao.ErrInsufficientStock)
	}
	require.Equal(t, 1, succeeded)

	record, err := s.dao.FindByTarget(ctx, 1001, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), record.Stock)
}

func (s *InventoryDAOTestSuite) TestReserve_UntrackedSkipsDecrement() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.dao.Upsert(ctx, dao.InventoryRecord{
		ProductID: 1002,
		Stock:     5,
		Track:     0,
	}))

	record, err := s.dao.Reserve(ctx, 1002, 0, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), record.Stock)
}

func (s *InventoryDAOTestSuite) TestReserveThenRelease() {
	t := s.T()
	ctx := context.Background()
	require.NoError(t, s.dao.Upsert(ctx, dao.InventoryRecord{
		ProductID: 1003,
		VariantID: 11,
		Stock:     4,
		Track:     1,
	}))

	record, err := s.dao.Reserve(ctx, 1003, 11, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), record.Stock)

	require.NoError(t, s.dao.Release(ctx, 1003, 11, 3))
	record, err = s.dao.FindByTarget(ctx, 1003, 11)
	require.NoError(t, err)
	require.Equal(t, int64(4), record.Stock)
}

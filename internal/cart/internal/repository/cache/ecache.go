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

package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mall/internal/cart/internal/domain"
	"github.com/pkg/errors"
)

// 购物车长期有效, 但不是永久, 放着不动的购物车最终过期
const expiration = 30 * 24 * time.Hour

var ErrCartNotFound = errors.New("购物车不存在")

type CartCache interface {
	Get(ctx context.Context, customerID int64) (domain.Cart, error)
	Set(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, customerID int64) error
}

type cartECache struct {
	ec ecache.Cache
}

func NewCartECache(ec ecache.Cache) CartCache {
	return &cartECache{
		ec: &ecache.NamespaceCache{
			Namespace: "cart:",
			C:         ec,
		},
	}
}

func (c *cartECache) Get(ctx context.Context, customerID int64) (domain.Cart, error) {
	val := c.ec.Get(ctx, c.key(customerID))
	if val.KeyNotFound() {
		return domain.Cart{}, ErrCartNotFound
	}
	if val.Err != nil {
		return domain.Cart{}, val.Err
	}
	data, err := val.AsBytes()
	if err != nil {
		return domain.Cart{}, err
	}
	var res domain.Cart
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Cart{}, errors.Wrap(err, "反序列化购物车失败")
	}
	return res, nil
}

func (c *cartECache) Set(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "序列化购物车失败")
	}
	return c.ec.Set(ctx, c.key(cart.CustomerID), string(data), expiration)
}

func (c *cartECache) Delete(ctx context.Context, customerID int64) error {
	_, err := c.ec.Delete(ctx, c.key(customerID))
	return err
}

func (c *cartECache) key(customerID int64) string {
	return strconv.FormatInt(customerID, 10)
}

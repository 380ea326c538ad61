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

package repository

import (
	"context"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mall/internal/product/internal/domain"
	"github.com/ecodeclub/mall/internal/product/internal/repository/dao"
)

type ProductRepository interface {
	FindSPUByID(ctx context.Context, id int64) (domain.SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error)
	FindSKUByID(ctx context.Context, id int64) (domain.SKU, error)
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{d: d}
}

type productRepository struct {
	d dao.ProductDAO
}

func (p *productRepository) FindSPUByID(ctx context.Context, id int64) (domain.SPU, error) {
	spu, err := p.d.FindSPUByID(ctx, id)
	if err != nil {
		return domain.SPU{}, err
	}
	skus, err := p.d.FindSKUsBySPUID(ctx, spu.Id)
	if err != nil {
		return domain.SPU{}, err
	}
	return p.toSPUDomain(spu, skus), nil
}

// FindSKUBySN 返回携带单个SKU的SPU
func (p *productRepository) FindSKUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	sku, err := p.d.FindSKUBySN(ctx, sn)
	if err != nil {
		return domain.SPU{}, fmt.Errorf("通过SN查找SKU失败: %w", err)
	}
	spu, err := p.d.FindSPUByID(ctx, sku.SPUID)
	if err != nil {
		return domain.SPU{}, fmt.Errorf("通过SKU查找SPU失败: %w", err)
	}
	return p.toSPUDomain(spu, []dao.SKU{sku}), nil
}

func (p *productRepository) FindSKUByID(ctx context.Context, id int64) (domain.SKU, error) {
	sku, err := p.d.FindSKUByID(ctx, id)
	if err != nil {
		return domain.SKU{}, err
	}
	return p.toSKUDomain(sku), nil
}

func (p *productRepository) toSPUDomain(spu dao.SPU, skus []dao.SKU) domain.SPU {
	return domain.SPU{
		ID:     spu.Id,
		SN:     spu.SN,
		Name:   spu.Name,
		Desc:   spu.Description,
		Status: domain.Status(spu.Status),
		SKUs: slice.Map(skus, func(idx int, src dao.SKU) domain.SKU {
			return p.toSKUDomain(src)
		}),
	}
}

func (p *productRepository) toSKUDomain(sku dao.SKU) domain.SKU {
	return domain.SKU{
		ID:     sku.Id,
		SPUID:  sku.SPUID,
		SN:     sku.SN,
		Name:   sku.Name,
		Desc:   sku.Description,
		Price:  sku.Price,
		Attrs:  sku.Attrs.String,
		Image:  sku.Image,
		Status: domain.Status(sku.Status),
	}
}

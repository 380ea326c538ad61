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

package ordercode

import (
	"fmt"

	"github.com/lithammer/shortuuid/v4"
)

// RandomFunc 定义生成随机串的函数类型
type RandomFunc func() string

// Generator 生成人类可读的订单号, 格式为 ORD-XXXXXXXX-XXXXXX
// 唯一性由订单表的唯一索引兜底, 冲突时由调用方重新生成
type Generator struct {
	randFunc RandomFunc
}

// NewGeneratorWith 创建一个Generator实例, 随机串函数可注入以便于测试
func NewGeneratorWith(randFunc RandomFunc) *Generator {
	return &Generator{randFunc: randFunc}
}

// NewGenerator 创建一个Generator实例
func NewGenerator() *Generator {
	return NewGeneratorWith(func() string { return shortuuid.New() })
}

// Generate 生成订单号, 两段随机串均为字母与数字
func (g *Generator) Generate() string {
	const (
		firstLen  = 8
		secondLen = 6
	)
	random := g.randFunc()
	for len(random) < firstLen+secondLen {
		random += g.randFunc()
	}
	return fmt.Sprintf("ORD-%s-%s", random[:firstLen], random[firstLen:firstLen+secondLen])
}

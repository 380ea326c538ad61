package ioc

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gotomicro/ego/core/econf"
)

func InitSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(econf.GetInt64("snowflake.nodeId"))
	if err != nil {
		panic(err)
	}
	return node
}

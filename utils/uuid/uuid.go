package uuid

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	guuid "github.com/google/uuid"
)

// SnowNode 雪花id生成节点，服务启动时按节点编号创建
type SnowNode struct {
	node *snowflake.Node
}

func NewNode(nodeNumber int64) *SnowNode {
	node, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		panic(err)
	}
	return &SnowNode{node: node}
}

// GenSnowID 生成一个全局唯一的int64 id
func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}

// GenUUID16 生成16位的短uuid，用于requestId等
func GenUUID16() string {
	u := strings.ReplaceAll(guuid.NewString(), "-", "")
	return u[:16]
}

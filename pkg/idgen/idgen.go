// Package idgen 提供雪花算法 ID 生成器
package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Snowflake 雪花算法 ID 生成器
type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	sequence  int64
	nodeID    int64
}

// NewSnowflake 创建雪花 ID 生成器
func NewSnowflake(nodeID int64) *Snowflake {
	return &Snowflake{
		timestamp: 0,
		sequence:  0,
		nodeID:    nodeID & 0x3FF, // 10 bits
	}
}

// Generate 生成雪花 ID
func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & 0xFFF // 12 bits
		if s.sequence == 0 {
			// 等待下一毫秒
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	// 组合 ID：timestamp(41 bits) + nodeID(10 bits) + sequence(12 bits)
	return (now << 22) | (s.nodeID << 12) | s.sequence
}

// GenerateString 生成带前缀的字符串 ID，如 ORD-7216389021931520
func (s *Snowflake) GenerateString(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.Generate())
}

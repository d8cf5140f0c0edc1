package client

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anisrini/literature/internal/logger"
	"github.com/anisrini/literature/internal/protocol"
)

var errNoSeat = errors.New("no seat credentials")

// tryReconnect 断线后自动重连并带令牌归位
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			c.reconnecting.Store(false)
		}
	}()

	if c.reconnecting.Load() {
		return
	}
	c.reconnecting.Store(true)

	// 指数退避重连策略
	backoff := reconnectInterval

	for c.reconnectCount < maxReconnectAttempts {
		c.reconnectCount++
		// 通过回调通知 UI 正在重连
		if c.OnReconnecting != nil {
			c.OnReconnecting(c.reconnectCount, maxReconnectAttempts)
		}

		time.Sleep(backoff)

		// 计算下一次退避时间 (最大 30 秒)
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}

		// 创建新连接
		dialer := websocket.Dialer{
			HandshakeTimeout:  10 * time.Second,
			EnableCompression: false,
		}

		conn, _, err := dialer.Dial(c.ServerURL, nil)
		if err != nil {
			continue
		}

		// 重置状态
		c.mu.Lock()
		c.conn = conn
		c.closed = false
		c.send = make(chan []byte, 256)
		c.receive = make(chan *protocol.Message, 256)
		c.done = make(chan struct{})
		c.mu.Unlock()

		// 启动读写协程
		go c.readPump()
		go c.writePump()

		// 等服务器的 connected 握手落地后再带令牌归位
		time.Sleep(100 * time.Millisecond)
		if err := c.RejoinGame(); err != nil {
			_ = c.conn.Close()
			continue
		}

		// 重连成功与否由 rejoined 消息告知 UI
		return
	}

	// 重连失败
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}

package wsclient

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	wsmodels "sarah-testing/models/ws"
)

var ErrClosed = errors.New("соединение закрыто клиентом")

func NewClient(c *websocket.Conn) *WsClient {
	return &WsClient{conn: c}
}

type WsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// ReadJSON читает одно сообщение клиента
func (c *WsClient) ReadJSON(out interface{}) error {
	err := c.conn.ReadJSON(out)
	if err != nil {
		if websocket.IsCloseError(err, closeCodes...) {
			return ErrClosed
		}
		return errors.Wrap(err, "ошибка получения сообщения")
	}
	return nil
}

func (c *WsClient) Send(msg wsmodels.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.conn.Conn == nil {
		return ErrClosed
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		log.WithError(err).WithField("code", msg.Code).Warn("ошибка отправки сообщения")
		return err
	}
	return nil
}

func (c *WsClient) SendError(status int, err error) error {
	msg := wsmodels.NewServerMessage(wsmodels.CodeError, nil)
	msg.Status = status
	msg.Msg = err.Error()
	return c.Send(msg)
}

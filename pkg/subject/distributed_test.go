package subject

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/ling-streams/rx/pkg/ack"
	"github.com/ling-streams/rx/pkg/observer"
)

func TestDistributedStillDeliversLocallyWhenBrokerUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	defer client.Close()

	d := NewDistributed[int](client, "test-channel")
	defer d.Close()

	var got int
	d.Subscribe(observer.Func[int]{Next: func(v int) ack.Ack {
		got = v
		return ack.NowContinue
	}})

	d.OnNext(7)
	assert.Equal(t, 7, got, "local delivery must happen even if the broker publish fails")
}

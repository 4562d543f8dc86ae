package leaguehistory

import (
	"math"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// MarshalJSON encodes the row flat as {"event":n,"<name>":v,...}. Non-finite
// values become null.
func (r MergedRow) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(`{"event":`)
	buf.B = strconv.AppendInt(buf.B, int64(r.Period), 10)

	for _, key := range r.Keys() {
		encodedKey, err := sonic.ConfigStd.Marshal(key)
		if err != nil {
			return nil, err
		}
		_ = buf.WriteByte(',')
		_, _ = buf.Write(encodedKey)
		_ = buf.WriteByte(':')

		v := r.Values[key]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			_, _ = buf.WriteString("null")
			continue
		}
		buf.B = strconv.AppendFloat(buf.B, v, 'f', -1, 64)
	}
	_ = buf.WriteByte('}')

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

package multipic

import "github.com/fabkury/godivoom/internal/bitio"

func bitPack(indices []uint8, bpi int) []byte {
	w := bitio.NewWriter()
	for _, idx := range indices {
		w.Write(idx, bpi)
	}
	return w.Bytes()
}

func bitUnpack(data []byte, count, bpi int) []uint8 {
	r := bitio.NewReader(data)
	out := make([]uint8, count)
	for i := range out {
		out[i] = r.Read(bpi)
	}
	return out
}

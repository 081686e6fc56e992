package binstream

import "sync"

const CHUNK_SIZE = 32 * 1024

// bufPool reuses the write-behind buffers of BufferedStream. 32KB matches the
// chunk size io.Copy uses.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, CHUNK_SIZE)
		return &b
	},
}

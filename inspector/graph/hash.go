package graph

import (
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns a stable identity hash for a function within its unit
func Fingerprint(fn *Function) string {
	path, start := "", 0
	if fn.Location != nil {
		path, start = fn.Location.Path, fn.Location.Start
	}
	data := []byte(path + "\x00" + fn.QualifiedName + "\x00" + strconv.Itoa(start))
	value, err := Hash(data)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(value, 16)
}

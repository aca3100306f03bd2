package logging

import "time"

// Generic field constructors.

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers.

func Component(name string) Field { return String("component", name) }

func Analysis(name string) Field { return String("analysis", name) }

func NodeID(id string) Field { return String("node_id", id) }

func RequestID(id string) Field { return String("request_id", id) }

func Seed(seed int64) Field { return Int64("seed", seed) }

func Count(n int) Field { return Int("count", n) }

func Latency(d time.Duration) Field { return Duration("latency", d) }

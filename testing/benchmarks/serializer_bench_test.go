package benchmarks

import (
	"context"
	"io"
	"testing"

	"github.com/zoobzio/replacer"
	"github.com/zoobzio/replacer/json"
	"github.com/zoobzio/replacer/msgpack"
	replacertest "github.com/zoobzio/replacer/testing"
)

func fullPolicy() *replacer.Policy {
	return replacer.NewPolicy(
		replacer.WithExcludedKeys("password"),
		replacer.WithMethods("Initials", "Answer", "Fail"),
		replacer.WithKeyStrategy(replacer.KeysAllString),
	)
}

func BenchmarkEncode_NoPolicy(b *testing.B) {
	account := replacertest.NewAccount()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = replacer.Encode(account, nil, 0)
	}
}

func BenchmarkEncode_DefaultPolicy(b *testing.B) {
	account := replacertest.NewAccount()
	p := replacer.NewPolicy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = replacer.Encode(account, p.Edit, 0)
	}
}

func BenchmarkEncode_WithMethods(b *testing.B) {
	account := replacertest.NewAccount()
	p := fullPolicy()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = replacer.Encode(account, p.Edit, 0)
	}
}

func BenchmarkMarshal_JSON(b *testing.B) {
	s := replacer.New(replacer.WithCodec(json.New()), replacer.WithPolicy(fullPolicy()))
	account := replacertest.NewAccount()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Marshal(ctx, account)
	}
}

func BenchmarkMarshal_MessagePack(b *testing.B) {
	s := replacer.New(replacer.WithCodec(msgpack.New()), replacer.WithPolicy(fullPolicy()))
	account := replacertest.NewAccount()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Marshal(ctx, account)
	}
}

func BenchmarkTransform_JSON(b *testing.B) {
	s := replacer.New(replacer.WithPolicy(fullPolicy()))
	account := replacertest.NewAccount()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Transform(ctx, account)
	}
}

func BenchmarkPrint_Parallel(b *testing.B) {
	s := replacer.New(replacer.WithPolicy(fullPolicy()), replacer.WithOutput(io.Discard))
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		account := replacertest.NewAccount()
		for pb.Next() {
			_ = s.Print(ctx, account)
		}
	})
}

func BenchmarkKeys(b *testing.B) {
	account := replacertest.NewAccount()

	for _, strategy := range []replacer.KeyStrategy{replacer.KeysEnumerable, replacer.KeysAll} {
		b.Run(string(strategy), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = replacer.Keys(account, strategy)
			}
		})
	}
}

func BenchmarkRegisterType_Warm(b *testing.B) {
	replacer.RegisterType[replacertest.Account]()
	account := replacertest.NewAccount()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = replacer.Keys(account, replacer.KeysEnumerable)
	}
}

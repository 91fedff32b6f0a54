package cache

import "time"

// Option Get/Set/Delete/Clear 호출 단위로 네임스페이스, 백엔드, TTL을 지정합니다.
type Option func(*callOptions)

type callOptions struct {
	namespace    string
	namespaceSet bool
	backend      BackendKind
	ttl          time.Duration
}

// WithNamespace 키 앞에 붙일 네임스페이스를 지정합니다. 지정하지 않으면 서비스 기본값을 사용합니다.
func WithNamespace(namespace string) Option {
	return func(o *callOptions) {
		o.namespace = namespace
		o.namespaceSet = true
	}
}

// WithBackend 사용할 백엔드를 지정합니다. (기본값: BackendMemory)
func WithBackend(kind BackendKind) Option {
	return func(o *callOptions) {
		o.backend = kind
	}
}

// WithTTL 저장할 항목의 유효 기간을 지정합니다. 0 이하이면 서비스 기본 TTL을 사용합니다.
func WithTTL(ttl time.Duration) Option {
	return func(o *callOptions) {
		o.ttl = ttl
	}
}

func (s *Service) resolve(opts []Option) callOptions {
	o := callOptions{
		namespace: s.namespace,
		backend:   BackendMemory,
		ttl:       s.defaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ttl <= 0 {
		o.ttl = s.defaultTTL
	}
	return o
}

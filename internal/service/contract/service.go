package contract

import (
	"context"
	"sync"
)

// Service main이 생명주기를 관리하는 장기 실행 서비스입니다.
//
// Start는 serviceStopWG.Add(1)이 호출된 상태에서 불리며, 서비스가 완전히 종료되면
// (또는 Start가 실패하면) serviceStopWG.Done()을 정확히 한 번 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

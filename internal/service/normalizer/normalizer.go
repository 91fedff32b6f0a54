// Package normalizer 판매처별 원천 피드 행을 표준 상품 레코드(contract.Product)로 변환합니다.
//
// 각 정규화기는 서로 독립적이며 순수 함수처럼 동작합니다. 같은 행을 여러 번 정규화해도
// 같은 상품 ID가 나오고, 외부 I/O는 수행하지 않습니다(로그 제외).
//
// 정규화 결과는 세 가지로 나뉩니다.
//
//   - 성공: Success=true, Product 설정, 경고(Warnings)가 있을 수 있음
//   - 건너뜀: Skipped=true. 상품 ID나 이름처럼 식별 필드가 없는 불완전한 행이며 오류로 집계하지 않음
//   - 실패: Success=false, Errors 설정. 가격 해석 실패나 필수 검증 실패
package normalizer

import (
	"time"

	"github.com/darkkaiser/feed-server/internal/service/contract"
	applog "github.com/darkkaiser/feed-server/pkg/log"
)

// Normalizer 하나의 원천 피드 종류를 담당하는 정규화기입니다.
type Normalizer interface {
	Kind() contract.SourceKind
	Normalize(row contract.RawRow) Result
}

// Result 한 행의 정규화 결과입니다.
type Result struct {
	Success  bool
	Product  *contract.Product
	Errors   []string
	Warnings []string
	Skipped  bool
	Reason   string
}

func skipped(reason string) Result {
	return Result{Skipped: true, Reason: reason}
}

func failed(errs []string, warnings []string) Result {
	return Result{Errors: errs, Warnings: warnings}
}

// base 모든 정규화기가 공유하는 시계와 로거입니다.
type base struct {
	kind contract.SourceKind
	now  func() time.Time
}

func newBase(kind contract.SourceKind, now func() time.Time) base {
	if now == nil {
		now = time.Now
	}
	return base{kind: kind, now: now}
}

func (b *base) Kind() contract.SourceKind {
	return b.kind
}

// finish 공통 검증을 수행하고 결과를 기록합니다.
// 검증에 실패하면 상품은 버리고 오류와 함께 그때까지의 경고를 돌려줍니다.
func (b *base) finish(p *contract.Product) Result {
	errs, warnings := validateProduct(p)

	logger := applog.WithComponentAndFields("normalizer."+string(b.kind), applog.Fields{
		"product_id":          p.ID,
		"merchant_product_id": p.MerchantProductID,
	})

	if len(errs) > 0 {
		logger.WithField("errors", errs).Warn("상품 정규화 실패: 필수 항목 검증을 통과하지 못했습니다")
		return failed(errs, warnings)
	}

	logger.WithField("warnings", warnings).Debug("상품 정규화 성공")

	return Result{Success: true, Product: p, Warnings: warnings}
}

// invalidPrice 가격을 해석하지 못한 행의 실패 결과를 반환합니다.
func (b *base) invalidPrice(merchantProductID string, err error) Result {
	applog.WithComponentAndFields("normalizer."+string(b.kind), applog.Fields{
		"merchant_product_id": merchantProductID,
		"error":               err,
	}).Warn("상품 정규화 실패: 가격을 해석할 수 없습니다")

	return failed([]string{"Invalid price: " + err.Error()}, nil)
}

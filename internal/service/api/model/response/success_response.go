package response

// SuccessResponse API 성공 응답
type SuccessResponse struct {
	// ResultCode 처리 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`

	// Message 처리 결과 메시지
	Message string `json:"message" example:"성공"`
}

// SweepResponse 수동 캐시 정리 결과
type SweepResponse struct {
	// Removed 정리된 만료 항목 수
	Removed int `json:"removed" example:"12"`
}

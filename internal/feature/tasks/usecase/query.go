package usecase

// 一覧クエリの認識されるソートキー。
const (
	SortByDeadline  = "deadline"
	SortByPriority  = "priority"
	SortByCreatedAt = "createdAt"
)

// ListParams は一覧エンドポイントが受け取る生のクエリパラメータです。
// すべて任意で、未指定のフィールドは空文字列です。
type ListParams struct {
	Status    string // statusの完全一致フィルタ
	Search    string // title/descriptionへの部分一致検索（大文字小文字を区別しない）
	SortBy    string // deadline | priority | createdAt
	SortOrder string // "desc"のみ降順、それ以外はすべて昇順
}

// ListQuery は正規化済みの取得仕様です。実行とは分離されており、
// リポジトリがこの仕様をストアのクエリへ変換します。
type ListQuery struct {
	// OwnerID による絞り込みは常に適用され、他のフィルタとANDで結合されます。
	OwnerID uint
	// Status が空でない場合のみ完全一致フィルタを適用します。
	Status string
	// Search が空でない場合、titleとdescriptionへのOR部分一致を適用します。
	// ORが適用されるのはこの2フィールド間のみです。
	Search string
	// SortBy は正規化済みのソートキー（上記定数のいずれか）です。
	SortBy string
	// Desc はソート方向です。
	Desc bool
}

// BuildListQuery は生パラメータを正規化してListQueryを構築します。
//
// デフォルトは作成日時の降順（新しい順）。sortByが認識されない値の場合も
// デフォルトへフォールバックします。sortOrderは"desc"と完全一致した場合のみ降順です。
//
// 既知の仕様: priorityソートは high/medium/low の文字列辞書順であり、
// 昇順は high, low, medium となって緊急度順にはなりません（互換性のため維持）。
func BuildListQuery(ownerID uint, p ListParams) ListQuery {
	q := ListQuery{
		OwnerID: ownerID,
		Status:  p.Status,
		Search:  p.Search,
	}

	switch p.SortBy {
	case SortByDeadline, SortByPriority:
		q.SortBy = p.SortBy
		q.Desc = p.SortOrder == "desc"
	case SortByCreatedAt:
		q.SortBy = SortByCreatedAt
		q.Desc = p.SortOrder == "desc"
	default:
		// 未指定・未対応の値はデフォルトソートへフォールバック
		q.SortBy = SortByCreatedAt
		q.Desc = true
	}

	return q
}

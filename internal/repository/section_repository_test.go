package repository

import (
	"reflect"
	"testing"

	"interview_prep_backend/internal/model"
)

func TestSubtractIDs(t *testing.T) {
	tests := []struct {
		name        string
		current     model.IDList
		remove      []string
		want        model.IDList
		wantChanged bool
	}{
		{
			name:        "只摘除指定ID",
			current:     model.IDList{"q1", "q2", "q3"},
			remove:      []string{"q2"},
			want:        model.IDList{"q1", "q3"},
			wantChanged: true,
		},
		{
			name:        "保留读快照之后并发追加的ID",
			current:     model.IDList{"q1", "q2", "q-new"},
			remove:      []string{"q2"},
			want:        model.IDList{"q1", "q-new"},
			wantChanged: true,
		},
		{
			name:        "摘除列表中不存在的ID不触发写回",
			current:     model.IDList{"q1", "q2"},
			remove:      []string{"q9"},
			want:        model.IDList{"q1", "q2"},
			wantChanged: false,
		},
		{
			name:        "全部摘除得到空列表",
			current:     model.IDList{"q1", "q2"},
			remove:      []string{"q1", "q2"},
			want:        model.IDList{},
			wantChanged: true,
		},
		{
			name:        "原列表为空",
			current:     model.IDList{},
			remove:      []string{"q1"},
			want:        model.IDList{},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := subtractIDs(tt.current, tt.remove)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("subtractIDs() = %v, want %v", got, tt.want)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

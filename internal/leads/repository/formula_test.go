package repository

import "testing"

func TestDuplicateFormula(t *testing.T) {
	tests := []struct {
		name  string
		email string
		phone string
		want  string
	}{
		{
			name:  "plain values",
			email: "dana@example.com",
			phone: "0521234567",
			want:  `OR({Email}='dana@example.com',{Phone Number}='0521234567')`,
		},
		{
			name:  "quote cannot close the literal",
			email: "x') , TRUE(), ('",
			phone: "0521234567",
			want:  `OR({Email}='x\') , TRUE(), (\'',{Phone Number}='0521234567')`,
		},
		{
			name:  "backslash is escaped before quotes",
			email: `a\'b`,
			phone: "",
			want:  `OR({Email}='a\\\'b',{Phone Number}='')`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := duplicateFormula(tt.email, tt.phone); got != tt.want {
				t.Errorf("duplicateFormula() = %s, want %s", got, tt.want)
			}
		})
	}
}

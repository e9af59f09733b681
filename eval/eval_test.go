package eval

import (
	"testing"
)

func Test_Evaluate(t *testing.T) {
	type args struct {
		expr   *Expression
		labels map[string]bool
	}
	tests := []struct {
		name    string
		args    args
		want    bool
		wantErr bool
	}{
		{
			name: "present label",
			args: args{
				labels: map[string]bool{"up": true},
				expr:   &Expression{Type: Operand, Label: "up"},
			},
			want: true,
		},
		{
			name: "absent label is false",
			args: args{
				labels: map[string]bool{},
				expr:   &Expression{Type: Operand, Label: "up"},
			},
			want: false,
		},
		{
			name: "boolean literal",
			args: args{
				labels: map[string]bool{},
				expr:   &Expression{Type: Operand, GoValue: true},
			},
			want: true,
		},
		{
			name: "negation",
			args: args{
				labels: map[string]bool{"fail": true},
				expr: &Expression{
					Type:     Operator,
					Operator: Not,
					Left:     &Expression{Type: Operand, Label: "fail"},
				},
			},
			want: false,
		},
		{
			name: "conjunction",
			args: args{
				labels: map[string]bool{"up": true, "ready": true},
				expr: &Expression{
					Type:     Operator,
					Operator: And,
					Left:     &Expression{Type: Operand, Label: "up"},
					Right:    &Expression{Type: Operand, Label: "ready"},
				},
			},
			want: true,
		},
		{
			name: "conjunction with one false side",
			args: args{
				labels: map[string]bool{"up": true},
				expr: &Expression{
					Type:     Operator,
					Operator: And,
					Left:     &Expression{Type: Operand, Label: "up"},
					Right:    &Expression{Type: Operand, Label: "ready"},
				},
			},
			want: false,
		},
		{
			name: "disjunction",
			args: args{
				labels: map[string]bool{"down": true},
				expr: &Expression{
					Type:     Operator,
					Operator: Or,
					Left:     &Expression{Type: Operand, Label: "up"},
					Right:    &Expression{Type: Operand, Label: "down"},
				},
			},
			want: true,
		},
		{
			name: "nested operators",
			args: args{
				labels: map[string]bool{"ready": true},
				expr: &Expression{
					Type:     Operator,
					Operator: And,
					Left: &Expression{
						Type:     Operator,
						Operator: Not,
						Left:     &Expression{Type: Operand, Label: "fail"},
					},
					Right: &Expression{
						Type:     Operator,
						Operator: Or,
						Left:     &Expression{Type: Operand, Label: "ready"},
						Right:    &Expression{Type: Operand, GoValue: false},
					},
				},
			},
			want: true,
		},
		{
			name: "operand with no label and no literal",
			args: args{
				labels: map[string]bool{},
				expr:   &Expression{Type: Operand},
			},
			wantErr: true,
		},
		{
			name: "negation without operand",
			args: args{
				labels: map[string]bool{},
				expr:   &Expression{Type: Operator, Operator: Not},
			},
			wantErr: true,
		},
		{
			name: "unknown operator",
			args: args{
				labels: map[string]bool{},
				expr: &Expression{
					Type:     Operator,
					Operator: "xor",
					Left:     &Expression{Type: Operand, Label: "a"},
					Right:    &Expression{Type: Operand, Label: "b"},
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.args.expr, tt.args.labels)
			if (err != nil) != tt.wantErr {
				t.Errorf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Evaluate_shortCircuit(t *testing.T) {
	// The right side is malformed; a short-circuited left side must hide it.
	broken := &Expression{Type: Operand}

	and := &Expression{
		Type:     Operator,
		Operator: And,
		Left:     &Expression{Type: Operand, GoValue: false},
		Right:    broken,
	}
	v, err := Evaluate(and, nil)
	if err != nil {
		t.Errorf("Evaluate() error = %v, want short-circuit", err)
	}
	if v {
		t.Error("Evaluate() = true, want false")
	}

	or := &Expression{
		Type:     Operator,
		Operator: Or,
		Left:     &Expression{Type: Operand, GoValue: true},
		Right:    broken,
	}
	v, err = Evaluate(or, nil)
	if err != nil {
		t.Errorf("Evaluate() error = %v, want short-circuit", err)
	}
	if !v {
		t.Error("Evaluate() = false, want true")
	}
}

func Test_IsOperator(t *testing.T) {
	for _, op := range []string{"and", "or", "not"} {
		if !IsOperator(op) {
			t.Errorf("IsOperator(%q) = false, want true", op)
		}
	}

	if IsOperator("xor") {
		t.Error(`IsOperator("xor") = true, want false`)
	}
}

package sqlinline

const QInsertDonation = `--sql efd44ae4-fcaf-41d9-b25a-7a3c53faf59f
insert into donation(user_id, food_items, donation_center_id, donation_date)
values ($1::bigint, $2::text, $3::bigint, $4::timestamptz)
returning donation_id;
`

const QListDonationsByUser = `--sql a2ba79d3-c60a-4d45-afbd-2fae029424aa
select d.donation_id, d.user_id, d.donation_center_id, c.name, d.food_items, d.donation_date
from donation d
join donation_center c on c.center_id = d.donation_center_id
where d.user_id = $1::bigint
order by d.donation_id desc;
`
